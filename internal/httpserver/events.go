package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mixle/internal/game"
)

// handleEvents streams session changes as server-sent events. The current
// snapshot is sent first, then one "state" or "tick" event (carrying a fresh
// snapshot) per change, "notice" events for player messages and a "ping"
// every heartbeat.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	w.Header().Set("Content-Type", sse.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Slow readers drop events rather than block the session.
	events := make(chan game.Event, 16)
	id := s.session.Notifier().Subscribe(func(e game.Event) {
		select {
		case events <- e:
		default:
		}
	})
	defer s.session.Notifier().Unsubscribe(id)

	send := func(name string, data any) bool {
		if err := sse.Encode(w, sse.Event{Event: name, Data: data}); err != nil {
			log.Debug().Err(err).Str("subscriber", id).Msg("sse write")
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(string(game.EventState), s.session.Snapshot()) {
		return
	}

	heartbeat := time.NewTicker(s.opts.Heartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if !send("ping", map[string]time.Time{"now": s.opts.Now().UTC()}) {
				return
			}
		case e := <-events:
			var data any = s.session.Snapshot()
			if e.Kind == game.EventNotice {
				data = e
			}
			if !send(string(e.Kind), data) {
				return
			}
		}
	}
}
