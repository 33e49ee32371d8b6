package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigid2d/internal/space"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// SpaceFactory rebuilds the scene from scratch on reset.
type SpaceFactory func() (*space.Space, error)

// Model drives a live simulation inside a Bubble Tea program.
type Model struct {
	factory       SpaceFactory
	sp            *space.Space
	sceneName     string
	dt            float64
	t             float64
	running       bool
	showContacts  bool
	err           error
	canvas        *Canvas
	view          *View
	energyHistory []float64
}

func NewModel(factory SpaceFactory, sceneName string, dt float64) (Model, error) {
	sp, err := factory()
	if err != nil {
		return Model{}, err
	}
	canvas := NewCanvas(width, height)
	return Model{
		factory:       factory,
		sp:            sp,
		sceneName:     sceneName,
		dt:            dt,
		running:       true,
		showContacts:  true,
		canvas:        canvas,
		view:          NewView(canvas, mgl64.Vec2{0, 4}, 6),
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)*m.dt), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			m.showContacts = !m.showContacts
		case "r":
			sp, err := m.factory()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.sp = sp
			m.t = 0
			m.energyHistory = m.energyHistory[:0]
		case "+", "=":
			m.view.Scale *= 1.2
		case "-", "_":
			m.view.Scale /= 1.2
		case "up", "k":
			m.view.Center[1] += 1 / m.view.Scale * 8
		case "down", "j":
			m.view.Center[1] -= 1 / m.view.Scale * 8
		case "left", "h":
			m.view.Center[0] -= 1 / m.view.Scale * 8
		case "right", "l":
			m.view.Center[0] += 1 / m.view.Scale * 8
		}
	case TickMsg:
		if m.running {
			if err := m.sp.Step(m.dt); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.t += m.dt

			m.energyHistory = append(m.energyHistory, m.sp.Energy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, tea.Tick(time.Duration(float64(time.Second)*m.dt), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// Err reports a step or reset failure that terminated the program.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	m.canvas.Clear()
	for _, b := range m.sp.Bodies() {
		m.view.DrawBody(b)
	}
	if m.showContacts {
		for _, res := range m.sp.Resolutions() {
			for i := 0; i < res.Count; i++ {
				m.view.DrawPoint(res.Contacts[i].Position)
			}
		}
	}

	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.sp.Bodies()))) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", m.sp.ContactCount())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.sp.Energy())) + "\n")
	s.WriteString(labelStyle.Render("Penetration") + valueStyle.Render(fmt.Sprintf("%.4f", m.sp.MaxPenetration())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nC:Contacts +/-:Zoom ←↑↓→:Pan"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
