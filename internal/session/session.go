// Package session keeps the logged-in user between ajar invocations.
//
// Credentials are compared in plain text against the data source's user
// list. The session file only records who is logged in.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/user/ajar/internal/model"
)

// FileName is the session file inside the state directory.
const FileName = "session.json"

// Session is the logged-in user.
type Session struct {
	Token      string    `json:"token"`
	Email      string    `json:"email"`
	Nama       string    `json:"nama"`
	Role       string    `json:"role"`
	Lokasi     string    `json:"lokasi"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Manager reads and writes the session file.
type Manager struct {
	path string
	now  func() time.Time
}

// NewManager creates a session manager for stateDir.
func NewManager(stateDir string) *Manager {
	return &Manager{
		path: filepath.Join(stateDir, FileName),
		now:  time.Now,
	}
}

// Login checks the credentials against users and stores a new session.
func (m *Manager) Login(users []model.User, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" {
		return nil, &model.ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return nil, &model.ValidationError{Field: "password", Reason: "is required"}
	}

	var user *model.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	s := &Session{
		Token:      uuid.NewString(),
		Email:      user.Email,
		Nama:       user.Nama,
		Role:       user.Role,
		Lokasi:     user.Lokasi,
		LoggedInAt: m.now().UTC(),
	}
	if err := m.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout removes the session. Logging out twice is not an error.
func (m *Manager) Logout() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Current returns the stored session, or ErrNotLoggedIn.
func (m *Manager) Current() (*Session, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.Token == "" || s.Email == "" {
		return nil, model.ErrNotLoggedIn
	}
	return &s, nil
}

// IsLoggedIn reports whether a valid session exists.
func (m *Manager) IsLoggedIn() bool {
	_, err := m.Current()
	return err == nil
}

func (m *Manager) write(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := atomic.WriteFile(m.path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Greeting returns the time-of-day greeting shown to a logged-in user.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return "Selamat Pagi"
	case h >= 11 && h < 15:
		return "Selamat Siang"
	case h >= 15 && h < 18:
		return "Selamat Sore"
	default:
		return "Selamat Malam"
	}
}
