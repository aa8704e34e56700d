package core

// Role identifies what kind of account a user holds.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// User represents a portal account in the system
//
// This is the "identity" - who someone is. It is safe to persist as the
// session record: it never carries the credential.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	Avatar        string `json:"avatar"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
}

// Account couples an identity with its local credential
//
// This is the "credential" - how someone proves who they are. Accounts live
// in the persisted registry and are never exposed to the presentation layer.
type Account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}

// EventCategory is the closed set of categories an event is stored with.
// Filter-only categories such as "all" are not part of this set.
type EventCategory string

const (
	CategoryWorkshop    EventCategory = "workshop"
	CategoryCareer      EventCategory = "career"
	CategoryCompetition EventCategory = "competition"
	CategoryAcademic    EventCategory = "academic"
	CategorySocial      EventCategory = "social"
)

// Event is a campus event users can RSVP to.
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Location     string        `json:"location"`
	Category     EventCategory `json:"category"`
	Attendees    int           `json:"attendees"`
	MaxAttendees int           `json:"maxAttendees"`
	IsRSVP       bool          `json:"isRSVP"`
	Image        string        `json:"image"`
}

// NoteType distinguishes AI-analyzed notes from manually written ones.
type NoteType string

const (
	NoteAIGenerated NoteType = "ai-generated"
	NoteManual      NoteType = "manual"
)

// Note is a study note. Summary and Questions are produced together at
// creation time and never edited afterwards.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subject   string   `json:"subject"`
	Content   string   `json:"content"`
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
	CreatedAt string   `json:"createdAt"`
	Type      NoteType `json:"type"`
}

// ProjectStatus is the closed set of statuses a project is stored with.
// The "joined" and "available" filter values are computed from IsJoined,
// never stored here.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
)

// Project is a student collaboration users can join or leave.
type Project struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	TechStack     []string      `json:"techStack"`
	Tags          []string      `json:"tags"`
	LookingFor    []string      `json:"lookingFor"`
	Creator       string        `json:"creator"`
	CreatorAvatar string        `json:"creatorAvatar"`
	Members       int           `json:"members"`
	MaxMembers    int           `json:"maxMembers"`
	Status        ProjectStatus `json:"status"`
	CreatedAt     string        `json:"createdAt"`
	IsJoined      bool          `json:"isJoined"`
}

// Profile holds the editable profile fields for a user, persisted
// independently of the session record.
type Profile struct {
	Bio    string   `json:"bio"`
	Year   string   `json:"year"`
	Major  string   `json:"major"`
	Skills []string `json:"skills"`
}
