package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/unimatehq/unimate/pkg/crypto"
)

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     Role
}

// AuthManager owns the authentication state machine and the current session.
// There is at most one active session; a user whose email is unverified is
// never promoted to one.
type AuthManager struct {
	mu       sync.Mutex
	store    Store
	notifier Notifier
	logger   *slog.Logger
	hasher   crypto.PasswordHandler
	now      func() time.Time
	newID    func() string

	current  *User
	registry []Account
	loaded   bool
	loading  bool
}

// NewAuthManager wires an AuthManager. All dependencies are required; the
// facade applies defaults before calling this.
func NewAuthManager(store Store, hasher crypto.PasswordHandler, notifier Notifier, logger *slog.Logger, now func() time.Time, newID func() string) *AuthManager {
	return &AuthManager{
		store:    store,
		notifier: notifier,
		logger:   logger,
		hasher:   hasher,
		now:      now,
		newID:    newID,
	}
}

// DefaultAvatar derives a deterministic avatar reference from a display name.
func DefaultAvatar(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}

// Restore resumes a previously persisted session, if any. Called once at
// startup; a missing or unreadable record leaves the manager anonymous.
func (m *AuthManager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.store.Read(KeySession)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			m.logger.Warn("session restore failed, starting anonymous", "error", err)
		}
		return
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.Warn("session record corrupt, starting anonymous", "error", err)
		return
	}
	m.current = &user
	m.logger.Info("session restored", "user_id", user.ID)
}

// Login authenticates a user with email and password and opens a session.
func (m *AuthManager) Login(email, password string) (*User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	user, err := m.login(email, password)
	if err != nil {
		notify(m.notifier, failure("Login failed", err.Error()))
		return nil, err
	}

	notify(m.notifier, success("Welcome back!", fmt.Sprintf("Logged in successfully as %s.", user.Role)))
	return user, nil
}

func (m *AuthManager) login(email, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Step 1: Find the account by email
	account, _, err := m.findAccount(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	// Step 2: Verify the password
	valid, err := m.hasher.Verify(password, account.PasswordHash)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	// Step 3: Refuse unverified identities. The account stays untouched;
	// the caller must complete verification and log in again.
	if !account.User.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	// Step 4: Promote the redacted identity to the active session
	session := account.User
	m.current = &session

	if err := m.writeJSON(KeySession, session); err != nil {
		// The in-memory session stays authoritative for this run.
		m.logger.Warn("failed to persist session record", "error", err, "user_id", session.ID)
	}

	m.logger.Info("login succeeded", "user_id", session.ID, "role", session.Role)
	return &session, nil
}

// Register creates a new unverified account. It never opens a session;
// the user must verify their email and then log in.
func (m *AuthManager) Register(input RegisterInput) error {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.register(input); err != nil {
		notify(m.notifier, failure("Registration failed", err.Error()))
		return err
	}

	notify(m.notifier, success("Account created!", "Please check your email to verify your account."))
	return nil
}

func (m *AuthManager) register(input RegisterInput) error {
	if err := requireFields(
		"email", input.Email,
		"password", input.Password,
		"name", input.Name,
	); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Step 1: Reject duplicate emails before touching the registry
	existing, _, err := m.findAccount(input.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	// Step 2: Hash the password
	hash, err := m.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = RoleStudent
	}

	// Step 3: Append the unverified account to the registry
	account := Account{
		User: User{
			ID:            m.newID(),
			Email:         normalizeEmail(input.Email),
			Name:          strings.TrimSpace(input.Name),
			Role:          role,
			Avatar:        DefaultAvatar(strings.TrimSpace(input.Name)),
			EmailVerified: false,
			CreatedAt:     m.now().UTC().Format(time.RFC3339),
		},
		PasswordHash: hash,
	}
	m.registry = append(m.registry, account)
	m.persistRegistry()

	m.logger.Info("account registered", "user_id", account.User.ID, "email", account.User.Email)
	return nil
}

// VerifyEmail flips the verified flag for the account registered under
// email. It reports false when no such account exists. Verifying an
// already-verified email is a silent no-op success.
func (m *AuthManager) VerifyEmail(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, idx, err := m.findAccount(email)
	if err != nil || account == nil {
		return false
	}
	if account.User.EmailVerified {
		return true
	}

	m.registry[idx].User.EmailVerified = true
	m.persistRegistry()

	m.logger.Info("email verified", "user_id", account.User.ID)
	notify(m.notifier, success("Email verified", "You can now log in to your account."))
	return true
}

// Logout clears the active session and its persisted record. The user
// registry is untouched.
func (m *AuthManager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}

	userID := m.current.ID
	m.current = nil
	if err := m.store.Delete(KeySession); err != nil {
		m.logger.Warn("failed to clear session record", "error", err, "user_id", userID)
	}

	m.logger.Info("logged out", "user_id", userID)
	notify(m.notifier, success("Logged out", "See you soon!"))
}

// CurrentUser returns a copy of the active session's identity, or nil when
// anonymous.
func (m *AuthManager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	user := *m.current
	return &user
}

// Loading reports whether an authentication operation is in flight. The
// presentation layer polls this while showing a spinner.
func (m *AuthManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *AuthManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// findAccount looks up a registry entry by normalized email. Callers hold mu.
func (m *AuthManager) findAccount(email string) (*Account, int, error) {
	if err := m.ensureRegistry(); err != nil {
		return nil, -1, err
	}
	normalized := normalizeEmail(email)
	for i := range m.registry {
		if m.registry[i].User.Email == normalized {
			return &m.registry[i], i, nil
		}
	}
	return nil, -1, nil
}

// ensureRegistry lazily loads the persisted registry. An absent key means
// an empty registry; a corrupt record is treated the same so the portal
// stays usable.
func (m *AuthManager) ensureRegistry() error {
	if m.loaded {
		return nil
	}

	raw, err := m.store.Read(KeyRegistry)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("failed to load user registry: %w", err)
		}
		m.loaded = true
		return nil
	}

	var registry []Account
	if err := json.Unmarshal(raw, &registry); err != nil {
		m.logger.Warn("user registry corrupt, starting empty", "error", err)
		m.loaded = true
		return nil
	}

	m.registry = registry
	m.loaded = true
	return nil
}

// persistRegistry writes the registry through to the store. A failed write
// is surfaced but never rolls back the in-memory registry.
func (m *AuthManager) persistRegistry() {
	if err := m.writeJSON(KeyRegistry, m.registry); err != nil {
		m.logger.Warn("failed to persist user registry", "error", err)
		notify(m.notifier, failure("Sync failed", "Your account changes are kept for this session but could not be saved."))
	}
}

func (m *AuthManager) writeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := m.store.Write(key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
