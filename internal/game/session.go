// internal/game/session.go
//
// Game session for the current UTC day.
// Responsibilities:
//   - Load or create today's history entry at startup and on day rollover.
//   - Enforce the legal moves: start, select, deselect, submit.
//   - Run the countdown between guesses through an injected Ticker.
//   - Write the day back to history on start and on every submission.
//
// Notes:
//   - All state is guarded by one mutex; events are published after it is
//     released.
//   - Won and lost are derived from the submissions, never stored.

package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/paint"
	"github.com/robalobadob/mixle/internal/stats"
)

const (
	Slots          = daily.ChallengeSize
	MaxSubmissions = history.MaxSubmissions
)

// State is the coarse phase of the day's game.
type State string

const (
	StateNotStarted State = "not_started"
	StateCountdown  State = "countdown"
	StateGuessing   State = "guessing"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Outcome is the result of a Submit call.
type Outcome string

const (
	OutcomeRejected Outcome = "rejected" // nothing changed
	OutcomeRetry    Outcome = "retry"    // wrong guess, countdown restarted
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
)

// Options wires a Session to its collaborators. History is required.
type Options struct {
	History  *history.Store
	Now      func() time.Time
	Ticker   Ticker
	Notifier *Notifier
}

// Session is the live state of one day's game.
type Session struct {
	mu       sync.Mutex
	history  *history.Store
	now      func() time.Time
	ticker   Ticker
	notifier *Notifier

	dayKey      int64
	hasStarted  bool
	seconds     int
	selected    [Slots]*paint.Color
	submissions []paint.Color
	challenge   paint.Color

	stop func()
	gen  uint64
}

// NewSession loads today's entry from history and returns a session
// positioned on it. A day that was already started resumes with the
// countdown at zero.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.History == nil {
		return nil, errors.New("game: history store is required")
	}
	s := &Session{
		history:  opts.History,
		now:      opts.Now,
		ticker:   opts.Ticker,
		notifier: opts.Notifier,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ticker == nil {
		s.ticker = RealTicker{}
	}
	if s.notifier == nil {
		s.notifier = NewNotifier()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Notifier returns the notifier events are published on.
func (s *Session) Notifier() *Notifier { return s.notifier }

// Reload re-reads history for the day the clock is on now. Hosts call it at
// UTC midnight.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	err := s.load(ctx)
	s.mu.Unlock()

	s.notifier.Publish(Event{Kind: EventState})
	return err
}

func (s *Session) load(ctx context.Context) error {
	s.stopCountdown()
	s.gen++
	s.seconds = 0
	s.selected = [Slots]*paint.Color{}

	dayKey := daily.DayKey(s.now())
	today := history.NewEntry(dayKey)
	e, err := s.history.Load(ctx, today)
	if e.DayTimestamp != dayKey {
		e = today
	}
	s.dayKey = dayKey
	s.hasStarted = e.HasStarted
	s.submissions = append([]paint.Color(nil), e.Submissions...)
	s.challenge = e.Challenge
	return err
}

// Start begins the day: it enters the first countdown and records that the
// day was started. It is a no-op once started.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.hasStarted {
		s.mu.Unlock()
		return nil
	}
	s.hasStarted = true
	s.startCountdown(CountdownSeconds)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Publish(Event{Kind: EventState})
	return err
}

// Tick advances the running countdown by one second.
func (s *Session) Tick() {
	s.mu.Lock()
	changed := s.decrement()
	s.mu.Unlock()

	if changed {
		s.notifier.Publish(Event{Kind: EventTick})
	}
}

// SelectColor puts c in the first empty slot. It reports false when the
// game is not in play or every slot is taken.
func (s *Session) SelectColor(c paint.Color) bool {
	s.mu.Lock()
	ok := s.playable() && s.filled() < Slots
	if ok {
		for i, slot := range s.selected {
			if slot == nil {
				cp := c.Plain()
				s.selected[i] = &cp
				break
			}
		}
	}
	s.mu.Unlock()

	if ok {
		s.notifier.Publish(Event{Kind: EventState})
	}
	return ok
}

// DeselectColor empties a slot. Clearing an empty slot still counts as
// applied; slots outside the board are ignored.
func (s *Session) DeselectColor(slot int) bool {
	s.mu.Lock()
	ok := s.playable() && slot >= 0 && slot < Slots
	if ok {
		s.selected[slot] = nil
	}
	s.mu.Unlock()

	if ok {
		s.notifier.Publish(Event{Kind: EventState})
	}
	return ok
}

// Submit mixes the selected colors into a guess. A guess is accepted only
// with every slot filled, the countdown at zero, fewer than MaxSubmissions
// guesses so far and the day not yet won; otherwise nothing changes and a
// notice is published. The returned error reports a failed history write,
// the guess itself has been applied by then.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if !s.canSubmit() {
		s.mu.Unlock()
		s.notifier.Publish(Event{Kind: EventNotice, Message: NoticeFillAll})
		return OutcomeRejected, nil
	}

	colors := make([]paint.Color, 0, Slots)
	for _, c := range s.selected {
		colors = append(colors, *c)
	}
	s.submissions = append(s.submissions, paint.Mix(colors))

	var out Outcome
	switch {
	case s.isWon():
		out = OutcomeWon
	case s.isLost():
		out = OutcomeLost
	default:
		out = OutcomeRetry
		s.startCountdown(CountdownSeconds)
	}
	err := s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Publish(Event{Kind: EventState})
	return out, err
}

// persist writes the day's entry back to history. Callers hold s.mu.
func (s *Session) persist(ctx context.Context) error {
	s.history.UpsertToday(s.entry())
	return s.history.Save(ctx)
}

func (s *Session) entry() history.Entry {
	return history.Entry{
		DayTimestamp: s.dayKey,
		HasStarted:   s.hasStarted,
		Submissions:  append([]paint.Color{}, s.submissions...),
		Challenge:    s.challenge,
	}
}

func (s *Session) isWon() bool { return s.entry().IsWon() }

func (s *Session) isLost() bool { return s.entry().IsLost() }

func (s *Session) playable() bool {
	return s.hasStarted && !s.isWon() && !s.isLost()
}

func (s *Session) canSubmit() bool {
	return s.filled() == Slots &&
		len(s.submissions) < MaxSubmissions &&
		s.seconds == 0 &&
		!s.isWon()
}

func (s *Session) filled() int {
	n := 0
	for _, c := range s.selected {
		if c != nil {
			n++
		}
	}
	return n
}

func (s *Session) state() State {
	switch {
	case s.isWon():
		return StateWon
	case s.isLost():
		return StateLost
	case !s.hasStarted:
		return StateNotStarted
	case s.seconds > 0:
		return StateCountdown
	default:
		return StateGuessing
	}
}

// IsWon reports whether the last guess matched the challenge.
func (s *Session) IsWon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isWon()
}

// IsLost reports whether every guess was used without a match.
func (s *Session) IsLost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLost()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Entry returns the day's record as it would be persisted.
func (s *Session) Entry() history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry()
}

// Stats recomputes the player's statistics from the full history.
func (s *Session) Stats() stats.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Compute(s.history.Entries())
}

// ShareText renders the day for the clipboard.
func (s *Session) ShareText(host string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShareText(host, s.entry())
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Day              string         `json:"day"`
	State            State          `json:"state"`
	HasStarted       bool           `json:"hasStarted"`
	SecondsRemaining int            `json:"secondsRemaining"`
	Slots            []*paint.Color `json:"slots"`
	Preview          paint.Color    `json:"preview"`
	PreviewHex       string         `json:"previewHex"`
	Submissions      []paint.Color  `json:"submissions"`
	Challenge        paint.Color    `json:"challenge"`
	CanSubmit        bool           `json:"canSubmit"`
	NextChallengeIn  string         `json:"nextChallengeIn"`
}

// Snapshot copies the current state. The challenge's composition is only
// revealed once the game is over.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]*paint.Color, Slots)
	for i, c := range s.selected {
		if c != nil {
			cp := *c
			slots[i] = &cp
		}
	}
	challenge := s.challenge.Plain()
	if s.isWon() || s.isLost() {
		challenge = s.challenge
	}
	preview := paint.Preview(slots)

	return Snapshot{
		Day:              daily.DateKey(daily.FromKey(s.dayKey)),
		State:            s.state(),
		HasStarted:       s.hasStarted,
		SecondsRemaining: s.seconds,
		Slots:            slots,
		Preview:          preview,
		PreviewHex:       preview.Hex(),
		Submissions:      append([]paint.Color{}, s.submissions...),
		Challenge:        challenge,
		CanSubmit:        s.canSubmit(),
		NextChallengeIn:  daily.TimeUntilNext(s.now()),
	}
}

// Close stops the countdown ticker.
func (s *Session) Close() {
	s.mu.Lock()
	s.stopCountdown()
	s.gen++
	s.mu.Unlock()
}
