// Package tui provides the Bubble Tea ear-training interface.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/detune/internal/model"
	"github.com/verte-zerg/detune/internal/notation"
	"github.com/verte-zerg/detune/internal/pitch"
	"github.com/verte-zerg/detune/internal/playback"
	"github.com/verte-zerg/detune/internal/scale"
	"github.com/verte-zerg/detune/internal/session"
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.Config
	session *session.Session
	player  *playback.Player
	log     logrus.FieldLogger

	keys keyMap
	help help.Model

	width  int
	height int

	cursor int
	status string
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	cursorKey     = keyStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	tryAgainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a practice TUI model around an existing session.
func NewModel(cfg model.Config, sess *session.Session, player *playback.Player, log logrus.FieldLogger) *Model {
	return &Model{
		config:  cfg,
		session: sess,
		player:  player,
		log:     log,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.player.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Guess):
		m.guess(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		m.guess(m.cursor)
	case key.Matches(msg, m.keys.Sharper):
		m.judge(session.Sharper)
	case key.Matches(msg, m.keys.Flatter):
		m.judge(session.Flatter)
	case key.Matches(msg, m.keys.Play):
		m.player.Play(playback.Sequence(m.session.ScaleFrequencies(), m.config.ToneDuration))
	case key.Matches(msg, m.keys.PlayTrue):
		m.player.Play(playback.Sequence(m.session.CorrectFrequencies(), m.config.ToneDuration))
	case key.Matches(msg, m.keys.Stop):
		m.player.Stop()
	case key.Matches(msg, m.keys.New):
		m.player.Stop()
		m.session.Regenerate()
		m.logRound("new round")
	case key.Matches(msg, m.keys.NextScale):
		m.selectScale(scale.Next(m.session.ScaleName(), 1))
	case key.Matches(msg, m.keys.PrevScale):
		m.selectScale(scale.Next(m.session.ScaleName(), -1))
	case key.Matches(msg, m.keys.LevelUp):
		m.stepLevel(-1)
	case key.Matches(msg, m.keys.LevelDown):
		m.stepLevel(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) guess(index int) {
	notes := m.session.WorkingSet().Notes()
	if index < 0 || index >= len(notes) {
		return
	}
	m.cursor = index
	if err := m.session.GuessNote(notes[index]); err != nil {
		m.reject(err)
		return
	}
	m.log.WithFields(logrus.Fields{
		"note":     notes[index].String(),
		"state":    m.session.State().String(),
		"feedback": m.session.Feedback().String(),
	}).Debug("guess")
}

func (m *Model) judge(d session.Direction) {
	j, err := m.session.JudgeDirection(d)
	if err != nil {
		m.reject(err)
		return
	}
	m.log.WithFields(logrus.Fields{
		"direction": d.String(),
		"correct":   j.Correct,
		"score":     m.session.Score(),
	}).Debug("judgment")
	if j.Correct {
		m.player.Play(playback.Sequence(j.Reinforcement, m.config.ToneDuration))
	}
}

func (m *Model) selectScale(name string) {
	m.player.Stop()
	if err := m.session.SelectScale(name); err != nil {
		m.reject(err)
		return
	}
	m.logRound("scale selected")
}

// stepLevel moves through session.Levels, which are ordered largest first.
func (m *Model) stepLevel(step int) {
	idx := slices.Index(session.Levels, m.session.Level())
	next := min(max(idx+step, 0), len(session.Levels)-1)
	if next == idx {
		return
	}
	m.player.Stop()
	if err := m.session.SelectDeviationLevel(session.Levels[next]); err != nil {
		m.reject(err)
		return
	}
	m.logRound("level selected")
}

func (m *Model) moveCursor(step int) {
	n := len(m.session.WorkingSet())
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+step)%n + n) % n
}

func (m *Model) reject(err error) {
	m.status = err.Error()
	m.log.WithError(err).Debug("operation rejected")
}

func (m *Model) logRound(event string) {
	m.log.WithFields(logrus.Fields{
		"scale": m.session.ScaleName(),
		"level": m.session.Level(),
		"score": m.session.Score(),
	}).Debug(event)
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.width
	if contentWidth > 0 {
		contentWidth = int(float64(m.width) * 0.70)
	}
	sections := []string{
		titleStyle.Render(fmt.Sprintf("%s · %d cents", m.session.ScaleName(), m.session.Level())),
		"",
		m.renderStaff(contentWidth),
		"",
		m.renderKeys(),
	}
	if prompt := m.renderPrompt(); prompt != "" {
		sections = append(sections, "", prompt)
	}
	if fb := m.renderFeedback(); fb != "" {
		sections = append(sections, "", fb)
	}
	if m.status != "" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	footer := m.renderFooter() + "\n" + m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, content)
	footerBlock := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
	return body + "\n" + footerBlock
}

func (m *Model) renderStaff(width int) string {
	hl, ok := m.session.Highlighted()
	var highlighted *pitch.NoteName
	if ok {
		highlighted = &hl
	}
	glyphs := notation.Project(m.session.WorkingSet(), highlighted)
	return notation.Render(glyphs, notation.Size{Width: width})
}

func (m *Model) renderKeys() string {
	notes := m.session.WorkingSet().Notes()
	keys := make([]string, len(notes))
	for i, n := range notes {
		style := keyStyle
		if i == m.cursor {
			style = cursorKey
		}
		keys[i] = style.Render(fmt.Sprintf("%d %s", i+1, n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, keys...)
}

func (m *Model) renderPrompt() string {
	if m.session.CorrectionMode() != session.CorrectionAwaiting {
		return ""
	}
	return promptStyle.Render("Found it! Which way would fix it?  ↑ Sharper   ↓ Flatter")
}

func (m *Model) renderFeedback() string {
	fb := m.session.Feedback()
	switch fb {
	case session.FeedbackCorrect:
		return correctStyle.Render(fb.Message())
	case session.FeedbackTryAgain:
		return tryAgainStyle.Render(fb.Message())
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Score %d", m.session.Score()),
		fmt.Sprintf("Scale %s", m.session.ScaleName()),
		fmt.Sprintf("Detune %d¢", m.session.Level()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
