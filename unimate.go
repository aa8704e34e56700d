// Package unimate is the client-side domain state and persistence engine of
// the UniMate student portal: an authenticated session plus three locally
// persisted entity collections (events, notes, projects). The presentation
// layer calls into the managers wired up here and renders the notifications
// they emit; nothing in this module renders or routes.
package unimate

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/unimatehq/unimate/core"
	"github.com/unimatehq/unimate/pkg/crypto"
)

// interfaces
type (
	Store        = core.Store
	Notifier     = core.Notifier
	NotifierFunc = core.NotifierFunc

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Portal        = core.Portal
	Config        = core.Config
	Notification  = core.Notification
	RegisterInput = core.RegisterInput
)

type (
	User    = core.User
	Event   = core.Event
	Note    = core.Note
	Project = core.Project
	Profile = core.Profile
)

const defaultAnalysisDelay = 2 * time.Second

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2 = crypto.NewArgon2
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrEmailNotVerified   = core.ErrEmailNotVerified
	ErrDuplicateEmail     = core.ErrDuplicateEmail
	ErrNotFound           = core.ErrNotFound
	ErrAlreadyProcessing  = core.ErrAlreadyProcessing
	ErrKeyNotFound        = core.ErrKeyNotFound
	ErrStoreRequired      = core.ErrStoreRequired
)

// New wires a Portal: session manager, the three entity collections, the
// notes analyzer, and the profile manager, all sharing the configured store
// and notifier. Collections are initialized (seeding on first run) and a
// previously persisted session is restored before New returns.
func New(config Config) (*Portal, error) {
	if config.Store == nil {
		return nil, ErrStoreRequired
	}

	// Set Defaults

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hasher := config.PasswordHasher
	if hasher == nil {
		hasher = crypto.NewArgon2()
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	newID := config.NewID
	if newID == nil {
		newID = NewEntityID
	}

	delay := config.AnalysisDelay
	if delay <= 0 {
		delay = defaultAnalysisDelay
	}

	auth := core.NewAuthManager(config.Store, hasher, config.Notifier, logger, now, newID)

	events := core.NewCollection(core.EventSpec(), config.Store, config.Notifier, logger, newID)
	notes := core.NewCollection(core.NoteSpec(), config.Store, config.Notifier, logger, newID)
	projects := core.NewCollection(core.ProjectSpec(), config.Store, config.Notifier, logger, newID)

	analyzer := core.NewNotesAnalyzer(notes, config.Notifier, logger, now, delay)
	profiles := core.NewProfileManager(config.Store, config.Notifier, logger)

	auth.Restore()
	events.Initialize()
	notes.Initialize()
	projects.Initialize()

	return &Portal{
		Auth:     auth,
		Events:   events,
		Notes:    notes,
		Projects: projects,
		Analyzer: analyzer,
		Profiles: profiles,
	}, nil
}

// NewEntityID returns a time-ordered UUIDv7 identifier, so identifiers
// assigned later always sort after earlier ones.
func NewEntityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
