// Package auth stores media-server credentials and the device identity used
// for playback reporting.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultServersFileName is the default name for the servers file.
	DefaultServersFileName = "servers.json"
)

// Server holds everything needed to talk to one media server as one user.
type Server struct {
	Name        string `json:"name"`
	BaseURL     string `json:"base_url"`
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	DeviceID    string `json:"device_id"`
}

// ServerList is the persisted set of known servers plus the default choice.
type ServerList struct {
	Default string   `json:"default,omitempty"`
	Servers []Server `json:"servers"`
}

// Get returns the server with the given name, or the default server when
// name is empty. Returns nil when no match exists.
func (l *ServerList) Get(name string) *Server {
	if l == nil {
		return nil
	}
	if name == "" {
		name = l.Default
	}
	if name == "" && len(l.Servers) == 1 {
		return &l.Servers[0]
	}
	for i := range l.Servers {
		if strings.EqualFold(l.Servers[i].Name, name) {
			return &l.Servers[i]
		}
	}
	return nil
}

// Add appends a server, minting a device id for it. Returns an error when
// the name is already taken.
func (l *ServerList) Add(s Server) error {
	if l.Get(s.Name) != nil {
		return fmt.Errorf("server %q already exists", s.Name)
	}
	if s.DeviceID == "" {
		s.DeviceID = uuid.NewString()
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	l.Servers = append(l.Servers, s)
	if len(l.Servers) == 1 {
		l.Default = s.Name
	}
	return nil
}

// Remove deletes the server with the given name. Returns false when it
// does not exist.
func (l *ServerList) Remove(name string) bool {
	for i := range l.Servers {
		if strings.EqualFold(l.Servers[i].Name, name) {
			l.Servers = append(l.Servers[:i], l.Servers[i+1:]...)
			if strings.EqualFold(l.Default, name) {
				l.Default = ""
				if len(l.Servers) > 0 {
					l.Default = l.Servers[0].Name
				}
			}
			return true
		}
	}
	return false
}

// Storage handles persisting the server list to disk.
type Storage struct {
	path string
}

// NewStorage creates a new server storage at the specified path.
// If path is empty, uses the default location (~/.config/reel/servers.json).
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "reel", DefaultServersFileName)
	}

	return &Storage{path: path}, nil
}

// Save persists the server list to disk.
func (s *Storage) Save(list *ServerList) error {
	// Ensure directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal server list: %w", err)
	}

	// Write with restricted permissions (owner only)
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write servers file: %w", err)
	}

	return nil
}

// Load reads the server list from disk. Returns an empty list when no
// servers have been stored yet.
func (s *Storage) Load() (*ServerList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ServerList{}, nil
		}
		return nil, fmt.Errorf("failed to read servers file: %w", err)
	}

	var list ServerList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse servers file: %w", err)
	}

	return &list, nil
}

// Delete removes the stored server list.
func (s *Storage) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete servers file: %w", err)
	}
	return nil
}
