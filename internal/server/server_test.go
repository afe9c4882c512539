package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardwar/internal/deck"
	"github.com/lox/cardwar/internal/game"
	"github.com/lox/cardwar/internal/runner"
)

type fakeSource struct {
	mu       sync.Mutex
	snap     runner.Snapshot
	ok       bool
	restarts chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		snap: runner.Snapshot{
			GameID:    "game-1",
			Seed:      42,
			Phase:     game.Playing,
			Players:   [2]string{"Diva 1", "Diva 2"},
			Scores:    [2]int{3, 1},
			CardsLeft: [2]int{22, 22},
			Rounds:    4,
			Games:     1,
		},
		ok:       true,
		restarts: make(chan struct{}, 4),
	}
}

func (f *fakeSource) Snapshot() (runner.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.ok
}

func (f *fakeSource) Restart() {
	f.restarts <- struct{}{}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startTestServer(t *testing.T) (*Server, *fakeSource, *httptest.Server) {
	t.Helper()
	src := newFakeSource()
	s := NewServer("127.0.0.1:0", src, quietLogger())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Stop()
		ts.Close()
	})
	return s, src, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSpectatorReceivesSnapshotThenEvents(t *testing.T) {
	s, _, ts := startTestServer(t)
	conn := dial(t, ts)

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeSnapshot, msg.Type)
	var snap SnapshotData
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	assert.Equal(t, "game-1", snap.GameID)
	assert.Equal(t, "playing", snap.Phase)
	assert.Equal(t, [2]int{3, 1}, snap.Scores)
	assert.Equal(t, 1, s.ConnectionCount())

	g := game.NewWithHands(game.Options{ID: "game-2"},
		[]deck.Card{deck.MustParseCard("As")},
		[]deck.Card{deck.MustParseCard("Kh")})
	round, err := g.PlayRound()
	require.NoError(t, err)
	s.OnEvent(game.NewRoundEvent(g, round, time.Unix(100, 0)))

	msg = readMessage(t, conn)
	require.Equal(t, MessageTypeRound, msg.Type)
	var rd RoundData
	require.NoError(t, json.Unmarshal(msg.Data, &rd))
	assert.Equal(t, "game-2", rd.GameID)
	assert.Equal(t, 1, rd.Round)
	assert.Equal(t, 0, rd.Winner)
	assert.Equal(t, "Ace", rd.Cards[0].Rank)
	assert.Equal(t, 12, rd.Cards[0].Value)
	assert.True(t, rd.Cards[1].Red)
	assert.Equal(t, [2]int{1, 0}, rd.Scores)
	assert.Contains(t, rd.Log, "Diva 1 wins the battle!!")

	res, err := g.Finish()
	require.NoError(t, err)
	s.OnEvent(game.NewGameOverEvent(g, res, time.Unix(102, 0)))

	msg = readMessage(t, conn)
	require.Equal(t, MessageTypeGameOver, msg.Type)
	var over GameOverData
	require.NoError(t, json.Unmarshal(msg.Data, &over))
	assert.False(t, over.Stalemate)
	assert.Equal(t, "Game Over!! Diva 1 wins the war!!", over.Log)
}

func TestRestartOverWebSocket(t *testing.T) {
	_, src, ts := startTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeRestart}))

	select {
	case <-src.restarts:
	case <-time.After(2 * time.Second):
		t.Fatal("restart not forwarded")
	}
}

func TestUnknownMessageGetsError(t *testing.T) {
	_, _, ts := startTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Message{Type: "deal_me_in"}))

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "unknown_message_type", data.Code)
}

func TestRestartEndpoint(t *testing.T) {
	_, src, ts := startTestServer(t)

	resp, err := http.Post(ts.URL+"/restart", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Len(t, src.restarts, 1)

	resp, err = http.Get(ts.URL + "/restart")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStateEndpoint(t *testing.T) {
	_, src, ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap SnapshotData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 4, snap.Rounds)
	assert.Nil(t, snap.Result)

	src.mu.Lock()
	src.ok = false
	src.mu.Unlock()

	resp2, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
}

func TestHealth(t *testing.T) {
	_, _, ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestDisconnectUnregisters(t *testing.T) {
	s, _, ts := startTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)
	require.Equal(t, 1, s.ConnectionCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return s.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSnapshotDataIncludesResult(t *testing.T) {
	last := game.Round{Number: 26, Cards: [2]deck.Card{deck.MustParseCard("2c"), deck.MustParseCard("2d")}, Outcome: game.Tie, Scores: [2]int{12, 12}}
	res := game.Result{Scores: [2]int{12, 12}, TieRounds: 2, Rounds: 26, Winner: game.Tie}

	data := NewSnapshotData(runner.Snapshot{
		GameID:    "g",
		Phase:     game.Over,
		Players:   [2]string{"A", "B"},
		LastRound: &last,
		Result:    &res,
	})
	require.NotNil(t, data.LastRound)
	assert.Equal(t, "tie", data.LastRound.Outcome)
	assert.Equal(t, -1, data.LastRound.Winner)
	require.NotNil(t, data.Result)
	assert.True(t, data.Result.Stalemate)
	assert.Equal(t, "Game Over!! Stalemate!! lame...", data.Result.Log)
}
