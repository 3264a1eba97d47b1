// ABOUTME: Authentication resource client
// ABOUTME: Login, registration, OTP verification, and password operations

package api

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// AuthClient wraps the authentication endpoints.
type AuthClient struct {
	t *Transport
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. Registration alone does not
// authenticate: the account must verify its OTP first, then log in.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// PasswordChange is the change-password payload.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Login exchanges credentials for a bearer token. The backend sometimes
// returns the token as a bare string and sometimes as {token, user}.
func (c *AuthClient) Login(ctx context.Context, creds Credentials) (*LoginResult, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		body:     creds,
		fallback: msgLoginFailed,
	})
	if !env.Success {
		return nil, env
	}

	if env.Data.Type == gjson.String {
		return &LoginResult{Token: env.Data.String()}, env
	}

	var result LoginResult
	env = decodeInto(env, &result)
	if !env.Success {
		return nil, env
	}
	if result.Token == "" {
		// Some backend versions nest the token one level deeper.
		if v := env.Data.Get("accessToken"); v.Exists() {
			result.Token = v.String()
		}
	}
	return &result, env
}

// Register creates a new account and triggers an OTP email.
func (c *AuthClient) Register(ctx context.Context, reg Registration) Envelope {
	return c.t.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/register",
		body:     reg,
		fallback: msgRegisterFailed,
	})
}

// VerifyOTP confirms the code sent to the given email.
func (c *AuthClient) VerifyOTP(ctx context.Context, email, code string) Envelope {
	return c.t.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/verify-otp",
		body:     map[string]string{"email": email, "otp": code},
		fallback: msgOTPFailed,
	})
}

// ResendOTP requests a fresh verification code.
func (c *AuthClient) ResendOTP(ctx context.Context, email string) Envelope {
	return c.t.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/resend-otp",
		body:     map[string]string{"email": email},
		fallback: msgOTPFailed,
	})
}

// ForgotPassword starts the password-reset flow for the given email.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) Envelope {
	return c.t.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/forgot-password",
		body:     map[string]string{"email": email},
		fallback: msgGenericFailure,
	})
}

// ChangePassword updates the current user's password.
func (c *AuthClient) ChangePassword(ctx context.Context, change PasswordChange) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/auth/change-password",
		body:        change,
		requireAuth: true,
		fallback:    msgGenericFailure,
	})
}

// Me fetches the current user's profile.
func (c *AuthClient) Me(ctx context.Context) (*User, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/auth/me",
		requireAuth: true,
		fallback:    msgGenericFailure,
	})
	var user User
	env = decodeInto(env, &user)
	if !env.Success {
		return nil, env
	}
	return &user, env
}
