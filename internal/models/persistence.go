package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the record's name inside a save directory.
func (s *Session) FileName() string {
	name := strings.ToLower(strings.Join(strings.Fields(s.Player.Name), "-"))
	if name == "" {
		name = "player"
	}
	return fmt.Sprintf("%s-%s.yaml", s.FinishedAt.UTC().Format("20060102T150405"), name)
}

// Save writes the session as YAML into dir and returns the file path.
func (s *Session) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.FileName())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadSession reads a record written by Save.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions returns record paths in dir, oldest first.
func ListSessions(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			sessions = append(sessions, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(sessions)
	return sessions, nil
}
