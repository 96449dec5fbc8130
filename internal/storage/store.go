package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/user/ajar/internal/model"
)

// Store bundles the state directory's journal and SQL mirror.
type Store struct {
	stateDir string
	journal  *Journal
	mirror   *Mirror
}

// NewStore opens the state directory, creating it if needed.
func NewStore(stateDir string) (*Store, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	mirror, err := OpenMirror(stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQL mirror: %w", err)
	}

	return &Store{
		stateDir: stateDir,
		journal:  NewJournal(stateDir),
		mirror:   mirror,
	}, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.mirror.Close()
}

// StateDir returns the state directory path.
func (s *Store) StateDir() string {
	return s.stateDir
}

// JournalPath returns the journal file path.
func (s *Store) JournalPath() string {
	return s.journal.Path()
}

// MirrorPath returns the SQL mirror file path.
func (s *Store) MirrorPath() string {
	return s.mirror.Path()
}

// Append writes a mutation to the journal.
func (s *Store) Append(entry *Entry) error {
	return s.journal.Append(entry)
}

// Entries returns every journaled mutation in order.
func (s *Store) Entries() ([]*Entry, error) {
	return s.journal.ReadAll()
}

// SyncMirror rebuilds the SQL mirror from the given records.
func (s *Store) SyncMirror(stocks []model.Stock, orders []model.DeliveryOrder) error {
	return s.mirror.Rebuild(stocks, orders)
}

// GetLastSyncTime returns when the mirror was last rebuilt.
func (s *Store) GetLastSyncTime() (time.Time, error) {
	return s.mirror.LastSync()
}

// RawQuery executes a raw SQL SELECT query against the mirror.
// Caller must validate that the query is a SELECT statement.
func (s *Store) RawQuery(query string) ([]map[string]interface{}, []string, error) {
	return s.mirror.RawQuery(query)
}
