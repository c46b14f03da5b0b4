package display

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TerminalBackend runs the machine inside a bubbletea program that shows
// a live register/cycle dashboard instead of a pixel display — the
// "headless but still interactive" mode.
type TerminalBackend struct{}

// Run starts the terminal dashboard and blocks until the user quits
// ('q' or ctrl+c).
func (t *TerminalBackend) Run(m Machine) error {
	_, err := tea.NewProgram(terminalModel{machine: m}).Run()
	if err != nil {
		return fmt.Errorf("display: terminal backend exited: %w", err)
	}
	return nil
}

type frameTickMsg struct{}

func frameTick() tea.Msg { return frameTickMsg{} }

type terminalModel struct {
	machine Machine
	frames  uint64
}

func (m terminalModel) Init() tea.Cmd {
	return frameTick
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameTickMsg:
		m.machine.RunFrame()
		m.frames++
		return m, frameTick
	}
	return m, nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	boxStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
)

func (m terminalModel) View() string {
	status := fmt.Sprintf(
		"%s %04X\n%s %d\n%s %d\n%s press q to quit",
		labelStyle.Render("PC:"), m.machine.PC(),
		labelStyle.Render("Cycles:"), m.machine.CycleCount(),
		labelStyle.Render("Frames:"), m.frames,
		labelStyle.Render(""),
	)
	return boxStyle.Render(status)
}
