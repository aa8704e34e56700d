package core

import (
	"sync"
)

// fakeStore is a test-only in-memory Store with error injection for
// exercising read and write failure paths.
type fakeStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	readErr  error
	writeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Read(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	value, ok := f.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (f *fakeStore) Write(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	f.data[key] = stored
	return nil
}

func (f *fakeStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

// recordingNotifier captures every emitted outcome for assertions.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recordingNotifier) last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

// fakeHasher is a cheap PasswordHandler so auth tests don't pay the argon2
// cost on every login.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}
