package dashboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PageMemory remembers where the user was in the users table, so returning
// from a user's posts restores the same page.
type PageMemory struct {
	path  string
	State MemoryState
}

// MemoryState is the persisted form of PageMemory.
type MemoryState struct {
	UsersPage  int    `yaml:"users_page"`
	UsersLimit int    `yaml:"users_limit"`
	LastUserID string `yaml:"last_user_id,omitempty"`
}

// DefaultMemoryPath returns the state file under the user's config directory.
func DefaultMemoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "lema", "dashboard.yml")
}

// LoadPageMemory reads the state at path. A missing file yields page 1.
func LoadPageMemory(path string) (*PageMemory, error) {
	m := &PageMemory{path: path, State: MemoryState{UsersPage: 1}}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dashboard state: %w", err)
	}
	if err := yaml.Unmarshal(data, &m.State); err != nil {
		return nil, fmt.Errorf("parse dashboard state: %w", err)
	}
	if m.State.UsersPage < 1 {
		m.State.UsersPage = 1
	}
	return m, nil
}

// RememberUsersPage records the users page being viewed.
func (m *PageMemory) RememberUsersPage(page, limit int) error {
	m.State.UsersPage = max(page, 1)
	m.State.UsersLimit = limit
	return m.save()
}

// RememberUser records the user whose posts were opened.
func (m *PageMemory) RememberUser(userID string) error {
	m.State.LastUserID = userID
	return m.save()
}

func (m *PageMemory) save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(m.State)
	if err != nil {
		return fmt.Errorf("encode dashboard state: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("write dashboard state: %w", err)
	}
	return nil
}
