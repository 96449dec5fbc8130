package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/user/ajar/internal/model"
)

// JournalFile is the name of the mutation journal inside the state directory.
const JournalFile = "journal.jsonl"

// Journal provides append-only JSONL storage for record mutations.
type Journal struct {
	path string
}

// NewJournal creates a journal stored in stateDir.
func NewJournal(stateDir string) *Journal {
	return &Journal{path: filepath.Join(stateDir, JournalFile)}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// NewEntry builds a journal entry for a record, hashing its JSON payload.
func NewEntry(op, kind string, rec model.Record, actor string) (*Entry, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	hash, err := model.HashPayload(payload)
	if err != nil {
		return nil, err
	}
	return &Entry{
		Op:      op,
		Kind:    kind,
		Key:     rec.Key(),
		Hash:    hash,
		At:      now().UTC(),
		Actor:   actor,
		Payload: payload,
	}, nil
}

// Append adds an entry to the journal atomically.
// The file is created if it doesn't exist.
func (j *Journal) Append(entry *Entry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	existing, err := os.ReadFile(j.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		existing = append(existing, '\n')
	}

	var buf bytes.Buffer
	buf.Grow(len(existing) + len(data) + 1)
	buf.Write(existing)
	buf.Write(data)
	buf.WriteByte('\n')

	if err := atomic.WriteFile(j.path, &buf); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// ReadAll reads every entry in file order, verifying payload hashes.
// Returns an empty slice if the journal doesn't exist.
func (j *Journal) ReadAll() ([]*Entry, error) {
	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse journal entry at line %d: %w", lineNum, err)
		}

		hash, err := model.HashPayload(entry.Payload)
		if err != nil {
			return nil, fmt.Errorf("journal entry at line %d: %w", lineNum, err)
		}
		if hash != entry.Hash {
			return nil, fmt.Errorf("journal entry at line %d (%s): %w", lineNum, entry.Key, model.ErrHashMismatch)
		}
		entries = append(entries, &entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}

	return entries, nil
}
