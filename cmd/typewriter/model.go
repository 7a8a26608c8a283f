package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/typeanim"
)

var (
	textStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// animation is the part of the animator the view controls.
type animation interface {
	Start() error
	Stop()
	State() typeanim.State
	Index() int
	Phrases() []string
}

type frameMsg string

type feedClosedMsg struct{}

type model struct {
	anim   animation
	frames <-chan string
	text   string
	err    error
}

func newModel(anim animation, frames <-chan string) model {
	return model{anim: anim, frames: frames}
}

func waitForFrame(frames <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-frames
		if !ok {
			return feedClosedMsg{}
		}
		return frameMsg(text)
	}
}

func (m model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.text = string(msg)
		return m, waitForFrame(m.frames)

	case feedClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.anim.State() == typeanim.Stopped {
				m.err = m.anim.Start()
			} else {
				m.anim.Stop()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	status := m.anim.State().String()
	if m.anim.State() == typeanim.Stopped {
		status = "paused"
	}
	help := fmt.Sprintf("phrase %d/%d · %s · space pause/resume · q quit",
		m.anim.Index()+1, len(m.anim.Phrases()), status)
	if m.err != nil {
		help = m.err.Error()
	}
	return "\n  " + textStyle.Render(m.text) + cursorStyle.Render("▌") + "\n\n  " + helpStyle.Render(help) + "\n"
}
