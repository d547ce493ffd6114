// internal/httpserver/routes_game.go
//
// HTTP routes that drive the day's game session.
// Exposes, under /game:
//   - GET    /game               → current snapshot
//   - POST   /game/start         → start the day (countdown begins)
//   - POST   /game/select        → add a palette color to the first empty slot
//   - DELETE /game/select/{slot} → clear a slot
//   - POST   /game/submit        → mix the ten slots into a guess
//
// Illegal moves are not HTTP errors: they answer 200 with applied=false (or
// outcome=rejected) and the unchanged snapshot.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mixle/internal/game"
	"github.com/robalobadob/mixle/internal/paint"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/start", s.handleStart)
		r.Post("/select", s.handleSelect)
		r.Delete("/select/{slot}", s.handleDeselect)
		r.Post("/submit", s.handleSubmit)
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.session.Snapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Start(r.Context()); err != nil {
		log.Error().Err(err).Msg("save history on start")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(s.session.Snapshot())
}

// selectReq is the payload for POST /game/select.
type selectReq struct {
	Color string `json:"color"` // palette name: red | yellow | blue | white
}

// moveRes answers select/deselect.
type moveRes struct {
	Applied bool          `json:"applied"`
	Game    game.Snapshot `json:"game"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	base, ok := paint.BaseByName(req.Color)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_color")
		return
	}
	applied := s.session.SelectColor(base.Color)
	_ = json.NewEncoder(w).Encode(moveRes{Applied: applied, Game: s.session.Snapshot()})
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_slot")
		return
	}
	applied := s.session.DeselectColor(slot)
	_ = json.NewEncoder(w).Encode(moveRes{Applied: applied, Game: s.session.Snapshot()})
}

// submitRes answers POST /game/submit.
type submitRes struct {
	Outcome game.Outcome  `json:"outcome"`
	Notice  string        `json:"notice,omitempty"`
	Game    game.Snapshot `json:"game"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	out, err := s.session.Submit(r.Context())
	if err != nil {
		log.Error().Err(err).Str("outcome", string(out)).Msg("save history on submit")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	res := submitRes{Outcome: out, Game: s.session.Snapshot()}
	if out == game.OutcomeRejected {
		res.Notice = game.NoticeFillAll
	}
	_ = json.NewEncoder(w).Encode(res)
}
