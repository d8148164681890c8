// Package confirm asks yes/no questions on the terminal.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/gate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ErrInterrupted is returned when the operator presses ctrl+c at a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// Terminal implements gate.Confirmer with an interactive prompt.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) Confirm(ctx context.Context, p gate.Prompt) (bool, error) {
	prog := tea.NewProgram(newModel(p),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
		tea.WithContext(ctx),
	)
	final, err := prog.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m := final.(model)
	if m.interrupted {
		return false, ErrInterrupted
	}
	return m.accepted, nil
}

// model has no default answer: enter does nothing until yes or no has been
// selected.
type model struct {
	prompt      gate.Prompt
	selected    bool
	yes         bool
	accepted    bool
	interrupted bool
	done        bool
}

func newModel(p gate.Prompt) model {
	return model{prompt: p}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		return m.finish(true)
	case "n", "N":
		return m.finish(false)
	case "ctrl+c":
		m.interrupted = true
		m.done = true
		return m, tea.Quit
	case "left", "h":
		m.selected, m.yes = true, true
	case "right", "l":
		m.selected, m.yes = true, false
	case "tab":
		m.yes = !m.yes || !m.selected
		m.selected = true
	case "enter":
		if m.selected {
			return m.finish(m.yes)
		}
	}
	return m, nil
}

func (m model) finish(accepted bool) (tea.Model, tea.Cmd) {
	m.accepted = accepted
	m.done = true
	return m, tea.Quit
}

func (m model) View() string {
	if m.done {
		answer := "no"
		switch {
		case m.interrupted:
			answer = "interrupted"
		case m.accepted:
			answer = "yes"
		}
		return titleStyle.Render(m.prompt.Title) + " " + answer + "\n"
	}

	yes, no := optionStyle.Render("Yes"), optionStyle.Render("No")
	if m.selected {
		if m.yes {
			yes = selectedStyle.Render("Yes")
		} else {
			no = selectedStyle.Render("No")
		}
	}

	lines := []string{titleStyle.Render(m.prompt.Title)}
	if m.prompt.Detail != "" {
		lines = append(lines, detailStyle.Render(m.prompt.Detail))
	}
	lines = append(lines,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, yes, " ", no),
		hintStyle.Render("y/n to answer, ←/→ to choose, enter to confirm"),
	)
	return strings.Join(lines, "\n") + "\n"
}
