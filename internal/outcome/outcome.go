// Package outcome holds the sinks a concluded session is written to.
package outcome

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tatianab/portal-escape/internal/models"
)

// TextFile writes the one-line result message, replacing earlier results.
type TextFile struct {
	Path string
}

func (f TextFile) Record(ctx context.Context, s *models.Session) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, []byte(s.Message+"\n"), 0644); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}

// SaveDir keeps a YAML record of every session.
type SaveDir struct {
	Dir string
}

func (d SaveDir) Record(ctx context.Context, s *models.Session) error {
	if _, err := s.Save(d.Dir); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Memory collects sessions, for simulations and tests.
type Memory struct {
	mu       sync.Mutex
	sessions []*models.Session
}

func (m *Memory) Record(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

// Sessions returns everything recorded so far.
func (m *Memory) Sessions() []*models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Session(nil), m.sessions...)
}

// Recorder is the sink method set. It matches engine.OutcomeSink.
type Recorder interface {
	Record(ctx context.Context, s *models.Session) error
}

// Multi records into every sink, even when an earlier one fails.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, s *models.Session) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
