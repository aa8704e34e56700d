package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"
)

// FilterAll matches every entity regardless of category or status.
const FilterAll = "all"

// EntitySpec defines the per-entity behavior a Collection needs: seed data,
// validation, search fields, category matching, and the toggle relationship.
// One spec exists per entity kind; the Collection logic is shared.
type EntitySpec[E any] struct {
	// Key is the storage key the collection persists under.
	Key string

	// Seed returns the fixed initial data used when nothing is persisted yet.
	Seed func() []E

	// ID extracts the entity identifier; AssignID stamps a fresh one onto a
	// validated draft.
	ID       func(E) string
	AssignID func(E, string) E

	// Validate rejects drafts with missing required fields.
	Validate func(E) error

	// SearchText lists the fields the search term is matched against.
	SearchText func(E) []string

	// Match evaluates the category predicate, including virtual categories
	// such as "joined" that are computed rather than stored.
	Match func(E, string) bool

	// Toggle flips the entity's relationship flag and adjusts its paired
	// count. Nil for entities without a toggle relationship.
	Toggle func(E) E

	// Wording for the outcome notifications.
	Created func(E) Notification
	Toggled func(E) Notification
}

// Collection owns one named entity sequence: load, seed, persist-on-mutate,
// create, toggle, and filtering. Mutations are serialized by the collection's
// own lock; the item slice is replaced, never edited in place, so filters
// iterate stable snapshots.
type Collection[E any] struct {
	mu       sync.Mutex
	spec     EntitySpec[E]
	store    Store
	notifier Notifier
	logger   *slog.Logger
	newID    func() string

	items      []E
	searchTerm string
	category   string
}

// NewCollection wires a Collection for the given spec.
func NewCollection[E any](spec EntitySpec[E], store Store, notifier Notifier, logger *slog.Logger, newID func() string) *Collection[E] {
	return &Collection[E]{
		spec:     spec,
		store:    store,
		notifier: notifier,
		logger:   logger,
		newID:    newID,
		category: FilterAll,
	}
}

// Initialize loads the persisted collection, seeding and persisting the
// fixed initial set when nothing is stored yet. A read failure falls back
// to the seed so the collection is never empty on first run.
func (c *Collection[E]) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.store.Read(c.spec.Key)
	if err == nil {
		var items []E
		if err := json.Unmarshal(raw, &items); err == nil {
			c.items = items
			return
		}
		c.logger.Warn("persisted collection corrupt, reseeding", "key", c.spec.Key)
	} else if !errors.Is(err, ErrKeyNotFound) {
		c.logger.Warn("collection read failed, falling back to seed", "key", c.spec.Key, "error", err)
	}

	c.items = c.spec.Seed()
	c.persist()
	c.logger.Info("collection seeded", "key", c.spec.Key, "count", len(c.items))
}

// Create validates a draft, assigns it a fresh identifier, prepends it to
// the sequence, and persists. The created entity is returned.
func (c *Collection[E]) Create(draft E) (E, error) {
	var zero E
	if err := c.spec.Validate(draft); err != nil {
		notify(c.notifier, failure("Missing details", err.Error()))
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entity := c.spec.AssignID(draft, c.newID())

	next := make([]E, 0, len(c.items)+1)
	next = append(next, entity)
	next = append(next, c.items...)
	c.items = next
	c.persist()

	c.logger.Info("entity created", "key", c.spec.Key, "id", c.spec.ID(entity))
	notify(c.notifier, c.spec.Created(entity))
	return entity, nil
}

// Toggle flips the relationship flag of the entity with the given id,
// adjusting its paired count, and persists. This is the only mutation path
// for existing entities.
func (c *Collection[E]) Toggle(id string) (E, error) {
	var zero E
	if c.spec.Toggle == nil {
		return zero, ErrToggleUnsupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.items {
		if c.spec.ID(c.items[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.logger.Debug("toggle target missing", "key", c.spec.Key, "id", id)
		notify(c.notifier, failure("Not found", "That entry no longer exists."))
		return zero, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}

	next := make([]E, len(c.items))
	copy(next, c.items)
	next[idx] = c.spec.Toggle(next[idx])
	c.items = next
	c.persist()

	updated := c.items[idx]
	c.logger.Info("relationship toggled", "key", c.spec.Key, "id", id)
	notify(c.notifier, c.spec.Toggled(updated))
	return updated, nil
}

// SetSearchTerm stores the active search term used by List.
func (c *Collection[E]) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SetCategoryFilter stores the active category selector used by List.
func (c *Collection[E]) SetCategoryFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if category == "" {
		category = FilterAll
	}
	c.category = category
}

// List returns the entities matching the active search term and category
// filter, in display order.
func (c *Collection[E]) List() []E {
	c.mu.Lock()
	term, category := c.searchTerm, c.category
	c.mu.Unlock()

	var out []E
	for e := range c.Filter(term, category) {
		out = append(out, e)
	}
	return out
}

// Len reports the number of entities, ignoring any active filter.
func (c *Collection[E]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Filter returns a lazy, restartable sequence of the entities matching a
// case-insensitive substring search and a category predicate. "all" matches
// every category. Filter is pure: it never mutates the collection and the
// same arguments yield the same results until the next mutation.
func (c *Collection[E]) Filter(term, category string) iter.Seq[E] {
	c.mu.Lock()
	snapshot := c.items
	c.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	if category == "" {
		category = FilterAll
	}

	return func(yield func(E) bool) {
		for _, e := range snapshot {
			if !c.spec.Match(e, category) {
				continue
			}
			if needle != "" && !matchesSearch(c.spec.SearchText(e), needle) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func matchesSearch(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// persist writes the sequence through to the store. Callers hold mu. A
// failed write is reported once and the in-memory sequence stays
// authoritative for the rest of the session.
func (c *Collection[E]) persist() {
	raw, err := json.Marshal(c.items)
	if err == nil {
		err = c.store.Write(c.spec.Key, raw)
	}
	if err != nil {
		c.logger.Warn("failed to persist collection", "key", c.spec.Key, "error", err)
		notify(c.notifier, failure("Sync failed", "Your changes are kept for this session but could not be saved."))
	}
}
