// ABOUTME: Logout command for the evmarket CLI
// ABOUTME: Clears the locally stored session

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runLogout(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears local credentials; no backend call is involved.
func runLogout(w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	store.Logout()
	fmt.Fprintln(w, "Signed out")
	return 0
}
