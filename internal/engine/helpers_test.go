package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/tatianab/portal-escape/internal/models"
)

// scriptedChannel answers prompts from per-keyword queues.
type scriptedChannel struct {
	yes        map[string][]bool
	directions []string
	names      []string
	prompts    []string
	told       []string
	observed   []Status
}

func newScripted() *scriptedChannel {
	return &scriptedChannel{yes: map[string][]bool{}}
}

func (c *scriptedChannel) answer(keyword string, answers ...bool) *scriptedChannel {
	c.yes[keyword] = append(c.yes[keyword], answers...)
	return c
}

func (c *scriptedChannel) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	lower := strings.ToLower(prompt)
	for keyword, queue := range c.yes {
		if strings.Contains(lower, keyword) && len(queue) > 0 {
			c.yes[keyword] = queue[1:]
			return queue[0], nil
		}
	}
	return false, fmt.Errorf("unexpected prompt %q", prompt)
}

func (c *scriptedChannel) AskDirection(ctx context.Context, prompt string, options []PortalOption) (models.Direction, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.directions) == 0 {
		return options[0].Direction, nil
	}
	input := c.directions[0]
	c.directions = c.directions[1:]
	return models.ParseDirection(input)
}

func (c *scriptedChannel) AskName(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.names) == 0 {
		return "", fmt.Errorf("unexpected name prompt")
	}
	name := c.names[0]
	c.names = c.names[1:]
	return name, nil
}

func (c *scriptedChannel) Tell(msg string) {
	c.told = append(c.told, msg)
}

func (c *scriptedChannel) Observe(s Status) {
	c.observed = append(c.observed, s)
}

func (c *scriptedChannel) heard(substr string) bool {
	for _, m := range c.told {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// seqSource replays fixed draws. Exhausted queues fall back to 0.5 and 0.
type seqSource struct {
	floats []float64
	ints   []int
}

func (s *seqSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *seqSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic(fmt.Sprintf("seqSource: %d out of range for IntN(%d)", v, n))
	}
	return v
}

type memorySink struct {
	sessions []*models.Session
	err      error
}

func (m *memorySink) Record(ctx context.Context, s *models.Session) error {
	m.sessions = append(m.sessions, s)
	return m.err
}

// eastOnly returns a table where only East is loaded.
func eastOnly(exit, police float64) *models.ProbabilityTable {
	table := models.NewProbabilityTable()
	table.Set(models.East, models.ProbabilityEntry{Label: "East", Open: 1, Exit: exit, Police: police})
	return table
}
