// Package tui is the interactive terminal front end for a blackjack session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// EngineFactory starts a fresh session. It is called once at start-up and
// again whenever a broke player asks for a new session.
type EngineFactory func() *game.Engine

// Model is the Bubble Tea model wrapping one engine
type Model struct {
	factory EngineFactory
	engine  *game.Engine
	logger  *log.Logger
	betStep int
	session int
	logged  int

	keys        keyMap
	help        help.Model
	logViewport viewport.Model
	gameLog     []string
	status      string

	width    int
	height   int
	quitting bool
}

// New creates a TUI model. betStep is how far +/- move the bet.
func New(factory EngineFactory, logger *log.Logger, betStep int) *Model {
	if betStep <= 0 {
		betStep = 10
	}
	h := help.New()
	h.ShowAll = true

	m := &Model{
		factory:     factory,
		logger:      logger.WithPrefix("tui"),
		betStep:     betStep,
		keys:        newKeyMap(),
		help:        h,
		logViewport: viewport.New(10, 5),
	}
	m.newSession()
	return m
}

// Engine exposes the current engine, mainly for tests
func (m *Model) Engine() *game.Engine {
	return m.engine
}

// Log returns the round log lines
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Status is the last rejection message, if any
func (m *Model) Status() string {
	return m.status
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeLog()
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.logger.Info("Quitting", "rounds", m.engine.Player().RoundsPlayed)
			return m, tea.Quit
		}
		m.handleKey(msg)
		m.keys.syncPhase(m.engine.Observe().Phase, m.engine.Broke())
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	e := m.engine
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Deal):
		m.check(e.StartRound(e.Player().Bet))
		m.logRound()
	case key.Matches(msg, m.keys.Hit):
		m.check(e.Hit())
		m.logRound()
	case key.Matches(msg, m.keys.Stand):
		m.check(e.Stand())
		m.logRound()
	case key.Matches(msg, m.keys.BetUp):
		m.check(e.AdjustBet(m.betStep))
	case key.Matches(msg, m.keys.BetDown):
		m.check(e.AdjustBet(-m.betStep))
	case key.Matches(msg, m.keys.AllIn):
		m.check(e.SetAllIn())
	case key.Matches(msg, m.keys.Roulette):
		on, err := e.ToggleRouletteMode()
		if m.check(err) {
			if on {
				m.addLog(WarningStyle.Render("Roulette mode: one bullet, six chambers."))
			} else {
				m.addLog("Back to the table.")
			}
		}
	case key.Matches(msg, m.keys.Easy):
		m.check(e.SetDifficulty(game.Easy))
	case key.Matches(msg, m.keys.Normal):
		m.check(e.SetDifficulty(game.Normal))
	case key.Matches(msg, m.keys.Hard):
		m.check(e.SetDifficulty(game.Hard))
	case key.Matches(msg, m.keys.Next):
		if e.Broke() {
			m.newSession()
			return
		}
		m.check(e.ResetRound())
	default:
		for i, b := range m.keys.Upgrades {
			if key.Matches(msg, b) {
				m.buy(game.AllUpgrades[i])
			}
		}
	}
}

func (m *Model) buy(kind game.Upgrade) {
	if !m.engine.PurchaseUpgrade(kind) {
		m.status = fmt.Sprintf("Cannot buy %s", kind)
		return
	}
	m.addLog(SuccessStyle.Render(fmt.Sprintf("Bought %s (level %d)", kind, m.engine.Player().Upgrades.Level(kind))))
}

// check records a rejected operation in the status line
func (m *Model) check(err error) bool {
	if err == nil {
		return true
	}
	m.status = err.Error()
	m.logger.Debug("Operation rejected", "error", err)
	return false
}

// logRound appends the round result to the log once it settles or is abandoned
func (m *Model) logRound() {
	r := m.engine.Observe()
	if r.Message == "" {
		return
	}
	if r.Phase != game.Settled && r.Phase != game.Betting {
		return
	}
	if r.Round == m.logged {
		return
	}
	m.logged = r.Round

	var line string
	if r.Roulette {
		line = fmt.Sprintf("#%d roulette: %s", r.Round, r.Message)
	} else {
		line = fmt.Sprintf("#%d %s vs %s: %s", r.Round, plainCards(r.PlayerHand), plainCards(r.DealerHand), r.Message)
	}
	for _, note := range r.Notes {
		m.addLog(InfoStyle.Render(note))
	}
	switch {
	case r.Delta > 0:
		m.addLog(SuccessStyle.Render(line))
	case r.Delta < 0:
		m.addLog(ErrorStyle.Render(line))
	default:
		m.addLog(line)
	}
	if m.engine.Broke() {
		m.addLog(ErrorStyle.Render("You are broke. Press enter for a new session."))
	}
}

func (m *Model) newSession() {
	m.engine = m.factory()
	m.session++
	m.logged = 0
	m.keys.syncPhase(m.engine.Observe().Phase, m.engine.Broke())
	p := m.engine.Player()
	m.addLog(HandInfoStyle.Render(fmt.Sprintf("Session %d: $%d bankroll, %s dealer", m.session, p.Money, p.Difficulty)))
	m.logger.Info("New session", "session", m.session, "money", p.Money)
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLog() {
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-lipgloss.Height(m.renderTable())-lipgloss.Height(m.help.View(m.keys))-6, 1)
	m.logViewport.GotoBottom()
}
