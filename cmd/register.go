// ABOUTME: Registration and OTP commands for the evmarket CLI
// ABOUTME: Sign-up, code verification, and code resend flows

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/api"
)

var (
	registerFullName string
	registerEmail    string
	registerPhone    string
	registerPassword string

	otpEmail string
	otpCode  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a marketplace account",
	Long: `Create a marketplace account. The account stays inactive until the
OTP code sent to the email address is verified (evmarket verify-otp),
and registration never signs you in by itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runRegister(ctx, os.Stdout))
	},
}

var verifyOTPCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Verify the registration OTP code",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runVerifyOTP(ctx, os.Stdout))
	},
}

var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Resend the registration OTP code",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runResendOTP(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerFullName, "name", "", "Full name (required)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address (required)")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (required)")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(verifyOTPCmd)
	verifyOTPCmd.Flags().StringVar(&otpEmail, "email", "", "Email address (required)")
	verifyOTPCmd.Flags().StringVar(&otpCode, "code", "", "OTP code from the email (required)")
	verifyOTPCmd.MarkFlagRequired("email")
	verifyOTPCmd.MarkFlagRequired("code")

	rootCmd.AddCommand(resendOTPCmd)
	resendOTPCmd.Flags().StringVar(&otpEmail, "email", "", "Email address (required)")
	resendOTPCmd.MarkFlagRequired("email")
}

// runRegister submits the sign-up and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.Register(ctx, api.Registration{
		FullName: registerFullName,
		Email:    registerEmail,
		Phone:    registerPhone,
		Password: registerPassword,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Account created. Check %s for the OTP code, then run:\n", registerEmail)
	fmt.Fprintf(w, "  evmarket verify-otp --email %s --code <code>\n", registerEmail)
	return 0
}

func runVerifyOTP(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.VerifyOTP(ctx, otpEmail, otpCode)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintln(w, "Email verified. You can now sign in with evmarket login.")
	return 0
}

func runResendOTP(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.ResendOTP(ctx, otpEmail)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "A new OTP code is on its way to %s\n", otpEmail)
	return 0
}
