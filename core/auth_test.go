package core

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
}

func setupAuth(t *testing.T) (*AuthManager, *fakeStore, *recordingNotifier) {
	t.Helper()
	store := newFakeStore()
	notifier := &recordingNotifier{}
	ids := 0
	manager := NewAuthManager(store, fakeHasher{}, notifier, testLogger(), fixedNow, func() string {
		ids++
		return "user-" + string(rune('a'+ids-1))
	})
	return manager, store, notifier
}

func registerVerified(t *testing.T, m *AuthManager, email, password, name string) {
	t.Helper()
	if err := m.Register(RegisterInput{Email: email, Password: password, Name: name}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !m.VerifyEmail(email) {
		t.Fatalf("VerifyEmail(%q) returned false", email)
	}
}

// Requirement: login with valid credentials of a verified user returns the
// stored identity minus the credential, and persists a redacted session.
func TestLoginShouldReturnRedactedSession(t *testing.T) {
	manager, store, _ := setupAuth(t)
	registerVerified(t, manager, "alice@example.edu", "SecurePass123!", "Alice Smith")

	user, err := manager.Login("alice@example.edu", "SecurePass123!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if user.Email != "alice@example.edu" {
		t.Errorf("Expected email alice@example.edu, got %s", user.Email)
	}
	if user.Name != "Alice Smith" {
		t.Errorf("Expected name Alice Smith, got %s", user.Name)
	}
	if user.Role != RoleStudent {
		t.Errorf("Expected default role student, got %s", user.Role)
	}
	if user.Avatar != DefaultAvatar("Alice Smith") {
		t.Errorf("Unexpected avatar %s", user.Avatar)
	}
	if !user.EmailVerified {
		t.Error("Session user should be verified")
	}

	if !store.has(KeySession) {
		t.Error("Session record should be persisted")
	}

	current := manager.CurrentUser()
	if current == nil || current.ID != user.ID {
		t.Error("CurrentUser should return the active session")
	}
}

// Requirement: any invalid (email, password) pair fails with
// ErrInvalidCredentials and the session state is unchanged.
func TestLoginShouldRejectInvalidCredentials(t *testing.T) {
	manager, store, _ := setupAuth(t)
	registerVerified(t, manager, "alice@example.edu", "SecurePass123!", "Alice Smith")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.edu", "SecurePass123!"},
		{"wrong password", "alice@example.edu", "wrong"},
		{"empty password", "alice@example.edu", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := manager.Login(test.email, test.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
			}
			if manager.CurrentUser() != nil {
				t.Error("Failed login must not open a session")
			}
			if store.has(KeySession) {
				t.Error("Failed login must not persist a session record")
			}
		})
	}
}

// Requirement: register followed by login fails with EmailNotVerified until
// verifyEmail succeeds, after which the same login call succeeds.
func TestLoginShouldRequireVerifiedEmail(t *testing.T) {
	manager, _, _ := setupAuth(t)

	if err := manager.Register(RegisterInput{Email: "bob@example.edu", Password: "pw12345", Name: "Bob"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := manager.Login("bob@example.edu", "pw12345"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("Expected ErrEmailNotVerified, got %v", err)
	}
	if manager.CurrentUser() != nil {
		t.Fatal("Unverified login must not open a session")
	}

	if !manager.VerifyEmail("bob@example.edu") {
		t.Fatal("VerifyEmail returned false for a registered email")
	}

	if _, err := manager.Login("bob@example.edu", "pw12345"); err != nil {
		t.Fatalf("Login after verification failed: %v", err)
	}
}

// Requirement: registration never auto-logs-in.
func TestRegisterShouldNotOpenSession(t *testing.T) {
	manager, store, _ := setupAuth(t)

	if err := manager.Register(RegisterInput{Email: "carol@example.edu", Password: "pw", Name: "Carol"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if manager.CurrentUser() != nil {
		t.Error("Register must not create a session")
	}
	if store.has(KeySession) {
		t.Error("Register must not persist a session record")
	}
}

// Requirement: registering twice with the same email fails with
// DuplicateEmail and leaves the registry length unchanged.
func TestRegisterShouldRejectDuplicateEmail(t *testing.T) {
	manager, _, _ := setupAuth(t)

	input := RegisterInput{Email: "dave@example.edu", Password: "pw", Name: "Dave"}
	if err := manager.Register(input); err != nil {
		t.Fatalf("First Register failed: %v", err)
	}

	if err := manager.Register(input); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
	}

	if got := len(manager.registry); got != 1 {
		t.Errorf("Registry length changed: expected 1, got %d", got)
	}
}

func TestRegisterShouldValidateRequiredFields(t *testing.T) {
	manager, _, _ := setupAuth(t)

	err := manager.Register(RegisterInput{Email: "", Password: "", Name: "Eve"})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 2 {
		t.Errorf("Expected 2 missing fields, got %v", vErr.Missing)
	}
	if len(manager.registry) != 0 {
		t.Error("Rejected registration must not touch the registry")
	}
}

// Requirement: verifying an already-verified email is an idempotent,
// silent success.
func TestVerifyEmailShouldBeIdempotent(t *testing.T) {
	manager, _, notifier := setupAuth(t)
	registerVerified(t, manager, "fay@example.edu", "pw", "Fay")

	before := notifier.count()
	if !manager.VerifyEmail("fay@example.edu") {
		t.Fatal("Re-verification should still report success")
	}
	if notifier.count() != before {
		t.Error("Re-verification must be silent")
	}
}

func TestVerifyEmailShouldReturnFalseForUnknownEmail(t *testing.T) {
	manager, _, notifier := setupAuth(t)

	before := notifier.count()
	if manager.VerifyEmail("ghost@example.edu") {
		t.Error("Unknown email should not verify")
	}
	if notifier.count() != before {
		t.Error("Unknown email verification must be silent")
	}
}

// Requirement: logout clears the session and its persisted record without
// touching the user registry.
func TestLogoutShouldClearSessionOnly(t *testing.T) {
	manager, store, _ := setupAuth(t)
	registerVerified(t, manager, "gil@example.edu", "pw", "Gil")
	if _, err := manager.Login("gil@example.edu", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	manager.Logout()

	if manager.CurrentUser() != nil {
		t.Error("Logout must clear the session")
	}
	if store.has(KeySession) {
		t.Error("Logout must clear the persisted session record")
	}
	if !store.has(KeyRegistry) {
		t.Error("Logout must not touch the registry")
	}
}

// Requirement: a persisted session is restored on startup.
func TestRestoreShouldResumePersistedSession(t *testing.T) {
	manager, store, _ := setupAuth(t)
	registerVerified(t, manager, "hal@example.edu", "pw", "Hal")
	if _, err := manager.Login("hal@example.edu", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	fresh := NewAuthManager(store, fakeHasher{}, nil, testLogger(), fixedNow, func() string { return "x" })
	fresh.Restore()

	current := fresh.CurrentUser()
	if current == nil || current.Email != "hal@example.edu" {
		t.Fatalf("Expected restored session for hal@example.edu, got %+v", current)
	}
}

// Requirement: store-write failures are non-fatal; the in-memory state
// stays authoritative for the session.
func TestRegisterShouldSurviveWriteFailure(t *testing.T) {
	manager, store, notifier := setupAuth(t)
	store.writeErr = errors.New("disk full")

	if err := manager.Register(RegisterInput{Email: "ivy@example.edu", Password: "pw", Name: "Ivy"}); err != nil {
		t.Fatalf("Register should succeed despite write failure: %v", err)
	}

	found := false
	for _, n := range notifier.notifications {
		if n.Kind == KindError && n.Title == "Sync failed" {
			found = true
		}
	}
	if !found {
		t.Error("Write failure should emit a sync-failed notification")
	}

	store.writeErr = nil
	if !manager.VerifyEmail("ivy@example.edu") {
		t.Fatal("In-memory registry should still hold the account")
	}
	if _, err := manager.Login("ivy@example.edu", "pw"); err != nil {
		t.Fatalf("Login against in-memory registry failed: %v", err)
	}
}

// Requirement: every login outcome is reported through the notification
// channel with role-specific messaging.
func TestLoginShouldEmitOutcomeNotifications(t *testing.T) {
	manager, _, notifier := setupAuth(t)
	registerVerified(t, manager, "kim@example.edu", "pw", "Kim")

	if _, err := manager.Login("kim@example.edu", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	last, ok := notifier.last()
	if !ok || last.Kind != KindSuccess || last.Title != "Welcome back!" {
		t.Errorf("Expected welcome notification, got %+v", last)
	}
	if last.Detail != "Logged in successfully as student." {
		t.Errorf("Expected role-specific detail, got %q", last.Detail)
	}

	_, _ = manager.Login("kim@example.edu", "nope")
	last, _ = notifier.last()
	if last.Kind != KindError || last.Title != "Login failed" {
		t.Errorf("Expected login-failed notification, got %+v", last)
	}
}
