package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gnomegl/passmeter/internal/logging"
	"github.com/gnomegl/passmeter/pkg/strength"
)

const barWidth = 48

// model holds the state for the interactive analyzer. The analysis is
// recomputed on every keystroke; the engine is fast enough that no
// debouncing is needed.
type model struct {
	input    textinput.Model
	bar      progress.Model
	analyzer strength.Analyzer
	result   *strength.Result
	current  string
	masked   bool
	copied   bool
}

func newModel(analyzer strength.Analyzer) model {
	ti := textinput.New()
	ti.Placeholder = "Type a password"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = barWidth
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'

	bar := progress.New(
		progress.WithSolidFill(strength.TierNone.Color()),
		progress.WithoutPercentage(),
	)
	bar.Width = barWidth

	return model{
		input:    ti,
		bar:      bar,
		analyzer: analyzer,
		result:   analyzer.Analyze(""),
		masked:   true,
	}
}

// Init starts the cursor blinking.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keystrokes and terminal resizes. Any change to the
// input value re-runs the analysis and clears the copied flash.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "tab":
			m.masked = !m.masked
			if m.masked {
				m.input.EchoMode = textinput.EchoPassword
			} else {
				m.input.EchoMode = textinput.EchoNormal
			}
			return m, nil

		case "ctrl+y":
			if m.current != "" {
				if err := clipboard.WriteAll(m.current); err != nil {
					logging.Debugf("clipboard copy failed: %v", err)
				} else {
					m.copied = true
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > barWidth {
			width = barWidth
		}
		if width > 0 {
			m.bar.Width = width
			m.input.Width = width
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != m.current {
		m.current = value
		m.result = m.analyzer.Analyze(value)
		m.copied = false
	}

	return m, cmd
}

// View renders the full analysis below the input field: the colored
// strength bar, the tier and entropy readouts, the crack-time line,
// and the feedback checklist.
func (m model) View() string {
	r := m.result

	bar := m.bar
	bar.FullColor = r.Tier.Color()

	lines := []string{
		titleStyle.Render("Password Strength Analyzer"),
		"",
		m.input.View(),
		"",
		bar.ViewAs(r.Percent / 100),
		tierStyle(r.Tier).Render(r.Tier.String()),
		"",
		labelStyle.Render("Entropy: ") + fmt.Sprintf("%d bits (raw %.1f, pool %d)", r.Score, r.RawEntropy, r.PoolSize),
		labelStyle.Render("Crack time: ") + r.CrackTime,
		"",
	}

	lines = append(lines, r.Feedback...)

	status := helpStyle.Render("tab: show/hide • ctrl+y: copy • esc: quit")
	if m.copied {
		status = copiedStyle.Render("Copied to clipboard")
	}
	lines = append(lines, "", status)

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run starts the interactive analyzer and blocks until the user quits.
func Run(analyzer strength.Analyzer) error {
	if _, err := tea.NewProgram(newModel(analyzer)).Run(); err != nil {
		return fmt.Errorf("failed to run interactive analyzer: %w", err)
	}
	return nil
}
