package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mixle/internal/game"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/stats"
	"github.com/robalobadob/mixle/internal/store"
)

var now = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

// idleTicker never fires; tests drive the countdown with Session.Tick.
type idleTicker struct{}

func (idleTicker) Every(time.Duration, func()) func() { return func() {} }

func newTestServer(t *testing.T) (*Server, *game.Session) {
	t.Helper()
	sess, err := game.NewSession(context.Background(), game.Options{
		History: history.NewStore(store.NewMemory()),
		Now:     func() time.Time { return now },
		Ticker:  idleTicker{},
	})
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	return New(sess, Options{
		ClientOrigin: "http://ui.test",
		ShareHost:    "Mixle",
		Now:          func() time.Time { return now },
		Heartbeat:    time.Hour,
	}), sess
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://ui.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/game/select", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	s, sess := newTestServer(t)

	snap := decode[game.Snapshot](t, do(t, s, http.MethodGet, "/game", ""))
	assert.Equal(t, game.StateNotStarted, snap.State)
	assert.Equal(t, "2024-01-02", snap.Day)

	move := decode[moveRes](t, do(t, s, http.MethodPost, "/game/select", `{"color":"red"}`))
	assert.False(t, move.Applied, "not started yet")

	snap = decode[game.Snapshot](t, do(t, s, http.MethodPost, "/game/start", ""))
	assert.Equal(t, game.StateCountdown, snap.State)

	for i := 0; i < game.Slots; i++ {
		move = decode[moveRes](t, do(t, s, http.MethodPost, "/game/select", `{"color":"Red"}`))
		require.True(t, move.Applied)
	}

	sub := decode[submitRes](t, do(t, s, http.MethodPost, "/game/submit", ""))
	assert.Equal(t, game.OutcomeRejected, sub.Outcome)
	assert.Equal(t, game.NoticeFillAll, sub.Notice)

	for i := 0; i < game.CountdownSeconds; i++ {
		sess.Tick()
	}
	sub = decode[submitRes](t, do(t, s, http.MethodPost, "/game/submit", ""))
	assert.Equal(t, game.OutcomeRetry, sub.Outcome)
	assert.Empty(t, sub.Notice)
	require.Len(t, sub.Game.Submissions, 1)
	assert.Equal(t, "EE1111", sub.Game.Submissions[0].Hex())

	move = decode[moveRes](t, do(t, s, http.MethodDelete, "/game/select/0", ""))
	assert.True(t, move.Applied)
	assert.Nil(t, move.Game.Slots[0])

	st := decode[stats.Stats](t, do(t, s, http.MethodGet, "/stats", ""))
	assert.Equal(t, 1, st.PlayedCount)
	assert.Zero(t, st.WonCount)

	share := decode[map[string]string](t, do(t, s, http.MethodGet, "/share", ""))
	assert.True(t, strings.HasPrefix(share["text"], "Mixle 2024-01-02 X/6\n"), share["text"])
}

func TestBadMoves(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		method, path, body, code string
	}{
		{http.MethodPost, "/game/select", `{"color":"green"}`, "unknown_color"},
		{http.MethodPost, "/game/select", `not json`, "bad_json"},
		{http.MethodDelete, "/game/select/x", "", "bad_slot"},
	}
	for _, tt := range tests {
		rec := do(t, s, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"`+tt.code+`"}`, rec.Body.String())
	}
}

// plainWriter hides the recorder's Flush method.
type plainWriter struct{ w http.ResponseWriter }

func (p plainWriter) Header() http.Header         { return p.w.Header() }
func (p plainWriter) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p plainWriter) WriteHeader(code int)        { p.w.WriteHeader(code) }

func TestEventsWithoutFlusher(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(plainWriter{rec}, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"streaming_unsupported"}`, rec.Body.String())
}

func TestPaletteAndClock(t *testing.T) {
	s, _ := newTestServer(t)

	pal := decode[[]paletteItem](t, do(t, s, http.MethodGet, "/palette", ""))
	require.Len(t, pal, 4)
	assert.Equal(t, "red", pal[0].Name)
	assert.Equal(t, "EE1111", pal[0].Hex)

	clock := decode[clockRes](t, do(t, s, http.MethodGet, "/clock", ""))
	assert.Equal(t, "14:00:00", clock.NextChallengeIn)
	assert.Equal(t, "2024-01-02", clock.Day)
}

func TestDebugChallenge(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/debug/challenge?date=2024-01-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[challengeRes](t, rec)
	assert.Equal(t, "F1AF40", res.Hex)
	assert.Len(t, res.Challenge.Composition, 10)

	assert.Equal(t, http.StatusForbidden, do(t, s, http.MethodGet, "/debug/challenge?date=2024-01-02", "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, s, http.MethodGet, "/debug/challenge?date=2030-01-01", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/debug/challenge?date=yesterday", "").Code)
}

func TestEventsStream(t *testing.T) {
	s, sess := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if l := lines.Text(); strings.HasPrefix(l, "event:") {
				require.True(t, lines.Scan())
				return l + "|" + lines.Text()
			}
		}
		t.Fatal("stream ended")
		return ""
	}

	first := next()
	assert.True(t, strings.HasPrefix(first, "event:state|data:"), first)
	assert.Contains(t, first, `"state":"not_started"`)

	require.NoError(t, sess.Start(context.Background()))
	second := next()
	assert.Contains(t, second, `"state":"countdown"`)

	_, _ = sess.Submit(context.Background())
	third := next()
	assert.True(t, strings.HasPrefix(third, "event:notice|"), third)
	assert.Contains(t, third, game.NoticeFillAll)
}
