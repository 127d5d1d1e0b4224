package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session as a JSON file. Writes go through a
// temporary file and rename so a crash mid-write leaves either the old
// session or the new one, never a torn file.
type FileStore struct {
	path   string
	logger zerolog.Logger
	lock   sync.Mutex
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created on first save.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "credential-store").Logger(),
	}
}

func (fs *FileStore) Save(session *Session) error {
	if !session.Valid() {
		return fmt.Errorf("FileStore.Save: session has no access token")
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("FileStore.Save: marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("FileStore.Save: create directory: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("FileStore.Save: write session file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("FileStore.Save: replace session file: %w", err)
	}

	fs.logger.Debug().Str("username", session.Username).Msg("session saved")
	return nil
}

func (fs *FileStore) Read() (*Session, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FileStore.Read: read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Fail open to logged out rather than crashing on a corrupt file.
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("session file unparseable, treating as absent")
		return nil, nil
	}
	if !session.Valid() {
		return nil, nil
	}
	return &session, nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("FileStore.Clear: remove session file: %w", err)
	}
	return nil
}
