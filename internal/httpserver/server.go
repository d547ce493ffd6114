// internal/httpserver/server.go
//
// HTTP host for a local Mixle web UI.
// Responsibilities:
//   - Router + middleware (access log, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/palette", "/clock".
//   - Game endpoints mounted under /game (see routes_game.go).
//   - Derived views: /stats, /share, /debug/challenge.
//   - Change stream: /events (server-sent events, see events.go).
//
// Notes:
//   - The server drives exactly one game.Session; it never creates its own.
//   - /events is kept outside the timeout group since it streams until the
//     client goes away.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/game"
	"github.com/robalobadob/mixle/internal/paint"
)

// Options configures the HTTP host.
type Options struct {
	ClientOrigin string           // single origin allowed by CORS
	ShareHost    string           // header word of the share text
	Now          func() time.Time // defaults to time.Now
	Heartbeat    time.Duration    // SSE keep-alive interval, default 30s
}

// Server bundles the router and the session it serves.
type Server struct {
	r       *chi.Mux
	session *game.Session
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(sess *game.Session, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 30 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), session: sess, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                  // add X-Request-ID
	s.r.Use(chimw.RealIP)                     // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                        // one zerolog line per request
	s.r.Use(chimw.Recoverer)                  // recover from panics
	s.r.Use(corsFor(opts.ClientOrigin))       // single-origin CORS

	s.r.Get("/events", s.handleEvents)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"mixle","endpoints":["/health","/game","/stats","/share","/clock","/palette","/events"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountGame(r)

		r.Get("/palette", s.handlePalette)
		r.Get("/clock", s.handleClock)
		r.Get("/stats", s.handleStats)
		r.Get("/share", s.handleShare)
		r.Get("/debug/challenge", s.handleDebugChallenge)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// writeJSON sends v as JSON with status. Routes outside jsonContentType
// (/events) rely on it for the header.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// corsFor allows a single browser origin to call the API.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request with status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ views --------------------------------------

type paletteItem struct {
	Name  string      `json:"name"`
	Hex   string      `json:"hex"`
	Color paint.Color `json:"color"`
	Glyph string      `json:"glyph"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	out := make([]paletteItem, 0, len(paint.Palette))
	for _, b := range paint.Palette {
		out = append(out, paletteItem{Name: b.Name, Hex: b.Color.Hex(), Color: b.Color, Glyph: b.Glyph})
	}
	_ = json.NewEncoder(w).Encode(out)
}

type clockRes struct {
	Now             time.Time `json:"now"`
	Day             string    `json:"day"`
	NextChallengeIn string    `json:"nextChallengeIn"`
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now().UTC()
	_ = json.NewEncoder(w).Encode(clockRes{
		Now:             now,
		Day:             daily.DateKey(now),
		NextChallengeIn: daily.TimeUntilNext(now),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.session.Stats())
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{"text": s.session.ShareText(s.opts.ShareHost)})
}

type challengeRes struct {
	Date      string      `json:"date"`
	Hex       string      `json:"hex"`
	Challenge paint.Color `json:"challenge"`
}

// handleDebugChallenge reveals the challenge of a past day. Today and later
// stay hidden.
func (s *Server) handleDebugChallenge(w http.ResponseWriter, r *http.Request) {
	key, err := daily.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	if key >= daily.DayKey(s.opts.Now()) {
		writeError(w, http.StatusForbidden, "not_revealed")
		return
	}
	c := daily.Generate(key)
	_ = json.NewEncoder(w).Encode(challengeRes{
		Date:      daily.DateKey(daily.FromKey(key)),
		Hex:       c.Hex(),
		Challenge: c,
	})
}
