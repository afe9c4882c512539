package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/cardwar/internal/deck"
	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/gameid"
)

// EventMsg carries a runner event into the Bubble Tea loop
type EventMsg struct {
	Event game.Event
}

// Model is the Bubble Tea model for watching a game
type Model struct {
	logger  *log.Logger
	restart func()

	gameID    string
	players   [2]string
	scores    [2]int
	cardsLeft [2]int
	cards     [2]*deck.Card
	lastWin   int
	round     int
	handSize  int

	over     bool
	verdict  string
	gameLog  []string
	quitting bool

	logViewport viewport.Model
	width       int
	height      int
}

// NewModel creates a model. restart is called when the player presses r
// after a game has ended.
func NewModel(restart func(), logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		logger:      logger.WithPrefix("tui"),
		restart:     restart,
		players:     [2]string{game.DefaultPlayer1, game.DefaultPlayer2},
		handSize:    game.HandSize,
		lastWin:     -1,
		logViewport: vp,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.over && m.restart != nil {
				m.logger.Debug("Replay requested", "game", gameid.Short(m.gameID))
				m.over = false
				m.verdict = ""
				m.restart()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) applyEvent(ev game.Event) {
	switch e := ev.(type) {
	case game.GameStartEvent:
		m.gameID = e.ID
		m.players = e.Players
		m.handSize = e.HandSize
		m.cardsLeft = [2]int{e.HandSize, e.HandSize}
		m.scores = [2]int{}
		m.cards = [2]*deck.Card{}
		m.lastWin = -1
		m.round = 0
		m.over = false
		m.verdict = ""
		m.gameLog = m.gameLog[:0]

	case game.RoundEvent:
		c1, c2 := e.Round.Cards[0], e.Round.Cards[1]
		m.cards = [2]*deck.Card{&c1, &c2}
		m.scores = e.Round.Scores
		m.round = e.Round.Number
		m.lastWin = e.Round.Outcome.Winner()
		m.cardsLeft = [2]int{m.handSize - m.round, m.handSize - m.round}
		m.gameLog = append(m.gameLog, game.FormatRound(e.Players, e.Round))

	case game.GameOverEvent:
		m.scores = e.Result.Scores
		m.over = true
		m.verdict = game.FormatResult(e.Players, e.Result)
		m.gameLog = append(m.gameLog, m.verdict)
	}

	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resize() {
	top := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderPanels())
	bottom := lipgloss.Height(m.renderFooter())

	w := m.width - 2
	h := m.height - top - bottom - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.refreshLog()
}

// GameLog returns the battle log lines for the current game
func (m *Model) GameLog() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Over reports whether the current game has ended
func (m *Model) Over() bool {
	return m.over
}

// Scores returns the displayed scores
func (m *Model) Scores() [2]int {
	return m.scores
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPanels(),
		LogStyle.Width(m.logViewport.Width).Render(m.logViewport.View()),
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	title := HeaderStyle.Render(" ♠ ♥ War ♦ ♣ ")
	if m.gameID == "" {
		return title
	}
	return title + " " + InfoStyle.Render("game "+gameid.Short(m.gameID))
}

func (m *Model) renderPanels() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderPanel(0), m.renderPanel(1))
}

func (m *Model) renderPanel(i int) string {
	card := InfoStyle.Render("waiting...")
	if c := m.cards[i]; c != nil {
		style := BlackCardStyle
		if c.IsRed() {
			style = RedCardStyle
		}
		card = style.Render(c.String())
	}

	body := strings.Join([]string{
		PlayerNameStyle.Render(m.players[i]),
		card,
		ScoreStyle.Render(fmt.Sprintf("Score: %d", m.scores[i])),
		InfoStyle.Render(fmt.Sprintf("%d cards left", m.cardsLeft[i])),
	}, "\n")

	style := PanelStyle
	if m.lastWin == i {
		style = WinnerPanelStyle
	}
	return style.Render(body)
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case m.over:
		status = SuccessStyle.Render(m.verdict)
	case m.round == 0:
		status = InfoStyle.Render("Dealing...")
	default:
		status = WarningStyle.Render(fmt.Sprintf("Round %d/%d", m.round, m.handSize))
	}

	replay := InfoStyle.Render("r replay")
	if m.over {
		replay = SuccessStyle.Render("r replay")
	}
	return status + "\n" + replay + InfoStyle.Render(" • ↑/↓ scroll • q quit")
}
