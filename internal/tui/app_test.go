// ABOUTME: Integration tests for the root TUI model
// ABOUTME: Tests screen routing, guard enforcement, and session transitions

package tui

import (
	"context"
	"testing"
	"time"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/session"
	"github.com/evmarket/evmarket-cli/internal/tui/adminqueue"
	"github.com/evmarket/evmarket-cli/internal/tui/menu"
	"github.com/evmarket/evmarket-cli/internal/tui/walletview"
)

type fakeAuth struct {
	loginResult *api.LoginResult
	loginEnv    api.Envelope
	meUser      *api.User
	meEnv       api.Envelope
}

func (f *fakeAuth) Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, api.Envelope) {
	return f.loginResult, f.loginEnv
}

func (f *fakeAuth) Register(ctx context.Context, reg api.Registration) api.Envelope {
	return api.Envelope{Success: true}
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, email, code string) api.Envelope {
	return api.Envelope{Success: true}
}

func (f *fakeAuth) ResendOTP(ctx context.Context, email string) api.Envelope {
	return api.Envelope{Success: true}
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) api.Envelope {
	return api.Envelope{Success: true}
}

func (f *fakeAuth) ChangePassword(ctx context.Context, change api.PasswordChange) api.Envelope {
	return api.Envelope{Success: true}
}

func (f *fakeAuth) Me(ctx context.Context) (*api.User, api.Envelope) {
	return f.meUser, f.meEnv
}

func newTestApp(t *testing.T, auth *fakeAuth) (*App, *session.Store) {
	t.Helper()
	creds := session.NewCredStore(t.TempDir())
	store := session.NewStore(auth, creds)
	client := api.New("http://localhost:5124", 5*time.Second, creds)
	return New(client, store), store
}

func TestAppInitialState(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})

	if app.screen != ScreenMenu {
		t.Errorf("expected initial screen ScreenMenu, got %d", app.screen)
	}
	if app.menu == nil {
		t.Error("expected menu to be initialized")
	}
	if app.snap.State != session.StateUnknown {
		t.Errorf("expected unknown session before restore, got %v", app.snap.State)
	}
}

func TestRestoredAnonymousStaysOnMenu(t *testing.T) {
	app, store := newTestApp(t, &fakeAuth{})

	snap := store.Restore(context.Background())
	model, _ := app.Update(restoredMsg{snap: snap})

	result := model.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected menu for anonymous session, got %d", result.screen)
	}
	if result.snap.State != session.StateAnonymous {
		t.Errorf("expected anonymous after restore, got %v", result.snap.State)
	}
}

func TestAdminRedirectedOnceFromMenu(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})

	adminSnap := session.Snapshot{
		State: session.StateAuthenticatedAdmin,
		User:  &api.User{ID: 1, Email: "admin@example.com", Role: api.RoleAdmin},
	}

	model, cmd := app.Update(SessionChangedMsg{Snap: adminSnap})
	result := model.(*App)

	if result.screen != ScreenAdmin {
		t.Fatalf("expected admin screen after admin session, got %d", result.screen)
	}
	if cmd == nil {
		t.Error("expected admin queue init command")
	}

	// Going back home must not bounce the admin again.
	model, _ = result.Update(adminqueue.CancelledMsg{})
	result = model.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected menu after leaving admin screen, got %d", result.screen)
	}

	model, _ = result.Update(SessionChangedMsg{Snap: adminSnap})
	result = model.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected admin redirect to be one-shot, got screen %d", result.screen)
	}
}

func TestAuthenticatedSessionClosesLoginScreen(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})
	app.snap = session.Snapshot{State: session.StateAnonymous}

	model, _ := app.handleMenuAction(menu.ActionLogin)
	result := model.(*App)
	if result.screen != ScreenLogin {
		t.Fatalf("expected login screen, got %d", result.screen)
	}

	memberSnap := session.Snapshot{
		State: session.StateAuthenticated,
		User:  &api.User{ID: 2, Email: "member@example.com", Role: api.RoleMember},
	}
	model, _ = result.Update(SessionChangedMsg{Snap: memberSnap})
	result = model.(*App)

	if result.screen == ScreenLogin {
		t.Error("expected login screen closed for authenticated session")
	}
}

func TestLoginBlockedWhileSessionUnknown(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})
	app.snap = session.Snapshot{State: session.StateUnknown}

	model, _ := app.handleMenuAction(menu.ActionLogin)
	result := model.(*App)

	if result.screen != ScreenMenu {
		t.Errorf("expected menu while session unknown, got %d", result.screen)
	}
}

func TestSessionLossLeavesMemberScreens(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})
	app.snap = session.Snapshot{
		State: session.StateAuthenticated,
		User:  &api.User{ID: 2, Email: "member@example.com", Role: api.RoleMember},
	}

	model, _ := app.handleMenuAction(menu.ActionWallet)
	result := model.(*App)
	if result.screen != ScreenWallet {
		t.Fatalf("expected wallet screen, got %d", result.screen)
	}

	model, _ = result.Update(SessionChangedMsg{Snap: session.Snapshot{State: session.StateAnonymous}})
	result = model.(*App)

	if result.screen != ScreenMenu {
		t.Errorf("expected menu after session loss, got %d", result.screen)
	}
}

func TestRevokedTokenEndsSessionAndLeavesWallet(t *testing.T) {
	auth := &fakeAuth{
		loginResult: &api.LoginResult{Token: "tok", User: &api.User{ID: 2, Email: "member@example.com", Role: api.RoleMember}},
		loginEnv:    api.Envelope{Success: true, Message: "OK", Status: 200},
	}
	app, store := newTestApp(t, auth)
	if env := store.Login(context.Background(), "member@example.com", "pw"); !env.Success {
		t.Fatalf("login failed: %v", env.Err)
	}
	app.snap = store.Snapshot()

	model, _ := app.handleMenuAction(menu.ActionWallet)
	result := model.(*App)
	if result.screen != ScreenWallet {
		t.Fatalf("expected wallet screen, got %d", result.screen)
	}

	revoked := api.Envelope{
		Success: false,
		Status:  401,
		Message: "session expired",
		Err:     &api.CallError{Kind: api.KindSessionInvalid, Message: "session expired"},
	}
	model, _ = result.Update(walletview.LoadedMsg{Env: revoked})
	result = model.(*App)

	if result.screen != ScreenMenu {
		t.Errorf("expected menu after token rejection, got %d", result.screen)
	}
	if store.Snapshot().State != session.StateAnonymous {
		t.Errorf("expected session invalidated, got %v", store.Snapshot().State)
	}
}

func TestOrdinaryWalletFailureKeepsSession(t *testing.T) {
	auth := &fakeAuth{
		loginResult: &api.LoginResult{Token: "tok", User: &api.User{ID: 2, Email: "member@example.com", Role: api.RoleMember}},
		loginEnv:    api.Envelope{Success: true, Message: "OK", Status: 200},
	}
	app, store := newTestApp(t, auth)
	if env := store.Login(context.Background(), "member@example.com", "pw"); !env.Success {
		t.Fatalf("login failed: %v", env.Err)
	}
	app.snap = store.Snapshot()

	model, _ := app.handleMenuAction(menu.ActionWallet)
	result := model.(*App)

	failed := api.Envelope{
		Success: false,
		Status:  500,
		Message: "Thao tác thất bại",
		Err:     &api.CallError{Kind: api.KindBusiness, Message: "Thao tác thất bại"},
	}
	model, _ = result.Update(walletview.LoadedMsg{Env: failed})
	result = model.(*App)

	if result.screen != ScreenWallet {
		t.Errorf("ordinary failure must stay on the wallet screen, got %d", result.screen)
	}
	if !store.Snapshot().IsAuthenticated() {
		t.Error("ordinary failure must not end the session")
	}
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	auth := &fakeAuth{
		loginEnv: api.Envelope{Success: false, Status: 400, Message: "Sai email hoặc mật khẩu"},
	}
	app, _ := newTestApp(t, auth)
	app.snap = session.Snapshot{State: session.StateAnonymous}

	model, _ := app.handleMenuAction(menu.ActionLogin)
	result := model.(*App)

	model, _ = result.Update(loginResultMsg{env: auth.loginEnv})
	result = model.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected login screen kept after failure, got %d", result.screen)
	}
	if result.loginView.Submitting() {
		t.Error("expected form re-armed after failure")
	}
}

func TestBrowseOpensPostList(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})

	model, cmd := app.handleMenuAction(menu.ActionBrowse)
	result := model.(*App)

	if result.screen != ScreenPosts {
		t.Errorf("expected posts screen, got %d", result.screen)
	}
	if cmd == nil {
		t.Error("expected initial fetch command")
	}
}

func TestViewRendersChrome(t *testing.T) {
	app, _ := newTestApp(t, &fakeAuth{})
	app.width = 100
	app.height = 40

	view := app.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
}
