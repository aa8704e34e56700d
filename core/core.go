package core

import (
	"log/slog"
	"time"

	"github.com/unimatehq/unimate/pkg/crypto"
)

// Config carries the dependencies and knobs for wiring a Portal.
type Config struct {
	// Store is the persistent key-value adapter. Required.
	Store Store

	// Optional config
	Notifier       Notifier
	Logger         *slog.Logger
	PasswordHasher crypto.PasswordHandler
	Now            func() time.Time
	NewID          func() string
	AnalysisDelay  time.Duration
}

// Portal groups the managers the presentation layer talks to.
type Portal struct {
	Auth     *AuthManager
	Events   *Collection[Event]
	Notes    *Collection[Note]
	Projects *Collection[Project]
	Analyzer *NotesAnalyzer
	Profiles *ProfileManager
}
