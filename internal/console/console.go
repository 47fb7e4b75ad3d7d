// Package console is a line-oriented player channel for plain terminals
// and pipes.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/models"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	optionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).PaddingLeft(2)
)

// Console reads answers line by line from in and writes prompts to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ParseYesNo accepts "yes" and "y" in any case; everything else is no.
func ParseYesNo(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return s == "yes" || s == "y"
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next line, giving up when ctx is done. A final line
// without a newline is still returned.
func (c *Console) readLine(ctx context.Context) (string, error) {
	done := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		done <- lineResult{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("read answer: %w", r.err)
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintln(c.out, promptStyle.Render(prompt))
	return c.readLine(ctx)
}

func (c *Console) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	line, err := c.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	return ParseYesNo(line), nil
}

func (c *Console) AskDirection(ctx context.Context, prompt string, options []engine.PortalOption) (models.Direction, error) {
	fmt.Fprintln(c.out, promptStyle.Render(prompt))
	for _, o := range options {
		fmt.Fprintln(c.out, optionStyle.Render(fmt.Sprintf("[%s] %s", o.Direction.Letter(), o)))
	}
	line, err := c.readLine(ctx)
	if err != nil {
		return 0, err
	}
	return engine.ParseChoice(line, options)
}

func (c *Console) AskName(ctx context.Context, prompt string) (string, error) {
	return c.ask(ctx, prompt)
}

func (c *Console) Tell(msg string) {
	fmt.Fprintln(c.out, msg)
}
