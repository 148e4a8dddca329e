// Package settings remembers the client's last connection choices between runs.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const itemKey = "connection"

// Settings is what the client saves after a successful join.
type Settings struct {
	Address    string `json:"address"`
	PlayerName string `json:"playerName"`
	VectorMove bool   `json:"vectorMove"`
}

// Defaults apply on first run.
func Defaults() Settings {
	return Settings{Address: "localhost:7373", PlayerName: "player"}
}

// Store persists Settings through gdata.
type Store struct {
	m *gdata.Manager
}

// Open prepares the per-user data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return &Store{m: m}, nil
}

// Load returns the saved settings, or Defaults when nothing was saved.
func (s *Store) Load() (Settings, error) {
	data, err := s.m.LoadItem(itemKey)
	if err != nil {
		return Defaults(), fmt.Errorf("load settings: %w", err)
	}
	return Decode(data)
}

// Save writes settings to disk.
func (s *Store) Save(v Settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.m.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Decode parses saved bytes. Empty input and missing fields fall back to Defaults.
func Decode(data []byte) (Settings, error) {
	v := Defaults()
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return Defaults(), fmt.Errorf("decode settings: %w", err)
	}
	return v, nil
}
