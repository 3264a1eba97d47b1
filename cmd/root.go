// ABOUTME: Root command for the evmarket CLI
// ABOUTME: Handles global flags, configuration, and shared client wiring

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/config"
	"github.com/evmarket/evmarket-cli/internal/logger"
	"github.com/evmarket/evmarket-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "evmarket",
	Short: "CLI for the EV marketplace",
	Long: `evmarket is a command-line interface for the second-hand EV marketplace.

Browse listings, manage your cart and wallet, and moderate the marketplace
from scripts or the interactive browser (evmarket browse).

Environment Variables:
  EVMARKET_API_URL          Backend API URL (default: http://localhost:5124)
  EVMARKET_REQUEST_TIMEOUT  Request timeout in seconds (default: 30)
  EVMARKET_CONFIG_DIR       Directory for the stored session`,
}

// Execute runs the root command
func Execute() error {
	// A missing .env file is not an error; env vars still apply.
	_ = godotenv.Load()
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides EVMARKET_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultAPIURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// buildDeps wires the credential store, API client, and session store the
// way the application always composes them: the credential store supplies
// the bearer token, the session store owns transitions.
func buildDeps() (*api.Client, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	baseURL := cfg.APIURL
	if apiURL != "" {
		baseURL = apiURL
	}

	creds := session.NewCredStore(cfg.ConfigDir)
	client := api.New(baseURL, cfg.RequestTimeout, creds)
	store := session.NewStore(client.Auth, creds)
	return client, store, nil
}

// exitCode maps an envelope to the CLI exit convention:
// 0 success, 1 backend refused the operation, 2 could not reach the backend.
func exitCode(env api.Envelope) int {
	if env.Success {
		return 0
	}
	switch env.Kind() {
	case api.KindTransport, api.KindDecode:
		return 2
	default:
		return 1
	}
}

// reportFailure prints the envelope's display message and returns the
// matching exit code. A rejected token ends the stored session so the next
// command starts anonymous instead of replaying the dead token.
func reportFailure(w io.Writer, store *session.Store, env api.Envelope) int {
	if env.Kind() == api.KindSessionInvalid {
		store.Invalidate()
	}
	fmt.Fprintf(w, "Error: %s\n", env.Message)
	return exitCode(env)
}

// printJSON writes indented JSON for --json output.
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// exitOn calls os.Exit for non-zero codes; split out so run functions stay
// testable.
func exitOn(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
