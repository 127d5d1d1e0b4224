package fakestore

import (
	"errors"
	"sync"

	"github.com/rentdesk/rentdesk/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests. It records call
// counts so tests can assert how the pipeline and manager drive the store.
type FakeStore struct {
	current *session.Session
	lock    sync.Mutex

	SaveCalls  int
	ReadCalls  int
	ClearCalls int

	// FailSave makes the next Save return an error when set
	FailSave bool
}

func New() *FakeStore {
	return &FakeStore{}
}

// NewWithSession seeds the store with an existing session.
func NewWithSession(s *session.Session) *FakeStore {
	return &FakeStore{current: s}
}

func (fs *FakeStore) Save(s *session.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.SaveCalls++
	if fs.FailSave {
		return errors.New("save failed")
	}
	if !s.Valid() {
		return errors.New("session has no access token")
	}
	copied := *s
	fs.current = &copied
	return nil
}

func (fs *FakeStore) Read() (*session.Session, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.ReadCalls++
	if fs.current == nil {
		return nil, nil
	}
	copied := *fs.current
	return &copied, nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.ClearCalls++
	fs.current = nil
	return nil
}
