package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/models"
)

type sessionState int

const (
	stateWaiting sessionState = iota
	stateAsking
	stateDone
	stateError
)

type model struct {
	state     sessionState
	cancel    context.CancelFunc
	pending   *promptMsg
	status    engine.Status
	session   *models.Session
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func newModel(cancel context.CancelFunc) model {
	ti := textinput.New()
	ti.Placeholder = "Waiting..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		state:     stateWaiting,
		cancel:    cancel,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.75)
}

func (m *model) appendLog(s string) {
	m.gameLog += s + "\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancel()
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateDone || m.state == stateError {
				return m, tea.Quit
			}
			if m.state != stateAsking || m.pending == nil {
				return m, nil
			}
			answer := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			m.textInput.Placeholder = "Waiting..."
			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + answer))
			m.pending.reply <- answer
			m.pending = nil
			m.state = stateWaiting
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.gameLog)

	case promptMsg:
		m.pending = &msg
		m.state = stateAsking
		m.appendLog(promptStyle.Render(msg.text))
		for _, o := range msg.options {
			m.appendLog(fmt.Sprintf("  [%s] %s", o.Direction.Letter(), o))
		}
		m.textInput.Placeholder = placeholder(msg.kind)
		return m, nil

	case tellMsg:
		m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.text))
		return m, nil

	case statusMsg:
		m.status = msg.status
		return m, nil

	case doneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.session = msg.session
		m.state = stateDone
		m.textInput.Placeholder = "Press Enter to leave."
		return m, nil
	}

	if m.state == stateAsking {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func placeholder(kind askKind) string {
	switch kind {
	case askYesNo:
		return "yes / no"
	case askDirection:
		return "N, E, S or W"
	default:
		return "Your name"
	}
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)

	default:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		help := helpStyle.Render("Answer the prompt and press Enter. Esc quits.")
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	st := m.status
	if st.Name == "" && st.Round == 0 {
		return ""
	}

	player := titleStyle.Render("PLAYER") + "\n" + st.Name + "\n"
	if st.Round > 0 {
		player += fmt.Sprintf("Round %d\n", st.Round)
	}
	player += "\n"

	stats := titleStyle.Render("STATS") + "\n"
	stats += fmt.Sprintf("Jumps: %d\nCoins: %d\nCloaks: %d/%d\n\n", st.Jumps, st.Coins, st.Cloaks, models.MaxSlots)

	portals := titleStyle.Render("PORTALS") + "\n"
	for _, row := range st.Table {
		portals += fmt.Sprintf("%s %-8s exit %3.0f%% police %3.0f%%\n", row.Direction.Letter(), row.Label, row.Exit*100, row.Police*100)
	}
	if m.session != nil {
		portals += "\n" + titleStyle.Render("RESULT") + "\n" + m.session.Message + "\n"
	}

	stateWidth := int(float64(m.width) * 0.23) // Leave some room for padding
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(player + stats + portals)
}

// Run plays one session in the terminal. newEngine receives the channel
// the engine must talk through.
func Run(ctx context.Context, newEngine func(engine.Channel) (*engine.Engine, error)) (*models.Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := &Bridge{}
	p := tea.NewProgram(newModel(cancel), tea.WithAltScreen())
	bridge.program = p

	// newEngine may Tell, and Send blocks until the program is running.
	result := make(chan doneMsg, 1)
	go func() {
		var done doneMsg
		eng, err := newEngine(bridge)
		if err != nil {
			done.err = err
		} else {
			done.session, done.err = eng.Play(ctx)
		}
		result <- done
		p.Send(done)
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	cancel()
	done := <-result
	return done.session, done.err
}
