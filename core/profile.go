package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ProfileManager owns the editable profile fields stored per user under
// profile.<userId>, independent of the session record.
type ProfileManager struct {
	mu       sync.Mutex
	store    Store
	notifier Notifier
	logger   *slog.Logger
}

// NewProfileManager wires a ProfileManager.
func NewProfileManager(store Store, notifier Notifier, logger *slog.Logger) *ProfileManager {
	return &ProfileManager{store: store, notifier: notifier, logger: logger}
}

// defaultProfile is what a user sees before they have saved anything.
func defaultProfile() Profile {
	return Profile{
		Bio:    "Computer Science student passionate about AI and web development. Eager to learn and collaborate.",
		Year:   "Junior",
		Major:  "Computer Science",
		Skills: []string{"React", "Python", "Machine Learning", "Node.js"},
	}
}

// Get returns the stored profile for userID, or the default profile when
// none has been saved yet. Reading never writes.
func (m *ProfileManager) Get(userID string) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.store.Read(ProfileKey(userID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			m.logger.Warn("profile read failed, using defaults", "user_id", userID, "error", err)
		}
		return defaultProfile()
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		m.logger.Warn("profile record corrupt, using defaults", "user_id", userID, "error", err)
		return defaultProfile()
	}
	return profile
}

// Update persists the given profile for userID.
func (m *ProfileManager) Update(userID string, profile Profile) error {
	if userID == "" {
		return ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := m.store.Write(ProfileKey(userID), raw); err != nil {
		m.logger.Warn("failed to persist profile", "user_id", userID, "error", err)
		notify(m.notifier, failure("Sync failed", "Your profile changes could not be saved."))
		return nil
	}

	m.logger.Info("profile updated", "user_id", userID)
	notify(m.notifier, success("Profile updated", "Your profile information has been saved successfully."))
	return nil
}

// AddSkill appends a skill to the user's profile, ignoring duplicates.
func (m *ProfileManager) AddSkill(userID, skill string) error {
	if skill == "" {
		return &ValidationError{Missing: []string{"skill"}}
	}

	profile := m.Get(userID)
	if slices.Contains(profile.Skills, skill) {
		return nil
	}
	profile.Skills = append(profile.Skills, skill)
	return m.Update(userID, profile)
}
