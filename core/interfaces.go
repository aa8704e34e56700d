package core

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT (persistent key-value store)
// ============================================

// Store is the persistent key-value contract every manager writes through.
// Values are JSON documents. Write must be durable before it returns; an
// immediate Read of the same key sees the written value. There is no
// transactional guarantee across keys - each manager owns a disjoint key
// namespace.
type Store interface {
	// Read returns the value stored under key, or ErrKeyNotFound when absent.
	Read(key string) ([]byte, error)
	// Write stores value under key, replacing any previous value.
	Write(key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// Storage keys. Each manager owns its own key and never touches another's.
const (
	KeySession  = "session.user"
	KeyRegistry = "session.registry"
	KeyEvents   = "collection.events"
	KeyNotes    = "collection.notes"
	KeyProjects = "collection.projects"
)

// ProfileKey returns the storage key for a user's editable profile fields.
func ProfileKey(userID string) string {
	return "profile." + userID
}

// ============================================
// NOTIFICATION PORT
// ============================================

// NotificationKind marks an outcome as a success or an error.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is the structured outcome every state-changing operation
// emits. The presentation layer renders it as a transient message; nothing
// in this package renders anything.
type Notification struct {
	Kind   NotificationKind `json:"kind"`
	Title  string           `json:"title"`
	Detail string           `json:"detail"`
}

// Notifier receives operation outcomes.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// notify forwards to the notifier when one is configured.
func notify(notifier Notifier, n Notification) {
	if notifier != nil {
		notifier.Notify(n)
	}
}

func success(title, detail string) Notification {
	return Notification{Kind: KindSuccess, Title: title, Detail: detail}
}

func failure(title, detail string) Notification {
	return Notification{Kind: KindError, Title: title, Detail: detail}
}
