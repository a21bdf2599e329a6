// internal/game/game.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/bridge/engine"
	"github.com/jason-s-yu/bridge/service/internal/config"
	"github.com/sirupsen/logrus"
)

// Phase is the stage of the deal. Phases only move forward.
type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseAuction
	PhasePlay
	PhaseFinished
)

var phaseNames = [...]string{"Setup", "Auction", "Play", "Finished"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// GameEventType represents the type of a game event passed to BroadcastFn.
type GameEventType string

const (
	EventVulnerability GameEventType = "vulnerability_set"
	EventDealer        GameEventType = "dealer_set"
	EventDealt         GameEventType = "cards_dealt"
	EventCall          GameEventType = "call_made"
	EventAuctionEnd    GameEventType = "auction_end"
	EventCardPlayed    GameEventType = "card_played"
	EventTrickEnd      GameEventType = "trick_end"
	EventDealScored    GameEventType = "deal_scored"
	EventRejected      GameEventType = "action_rejected"
)

// GameEvent describes an accepted action or a phase change.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	Seq     int                    `json:"seq"`
	Seat    string                 `json:"seat,omitempty"`
	Phase   Phase                  `json:"phase"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Bridge adjudicates a single deal. It owns the hands, the phase, the active
// auction or trick and the history; all changes go through Simulate.
type Bridge struct {
	ID uuid.UUID // Unique identifier for this deal.

	// BroadcastFn, if set, receives an event for each accepted action and
	// each rejection. Called with the lock held.
	BroadcastFn func(ev GameEvent)

	mu  sync.Mutex
	log logrus.FieldLogger
	rng engine.RandSource

	phase    Phase
	dealer   engine.Seat
	vul      engine.Vulnerability
	hands    engine.Hands
	dealt    bool
	auction  *engine.Auction
	contract engine.Contract
	declarer engine.Seat
	trick    *engine.Trick
	made     int // tricks won by the declaring side so far

	history  GameHistory
	outcomes []Outcome
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger routes the deal's logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Bridge) { b.log = l }
}

// WithID fixes the deal's identifier.
func WithID(id uuid.UUID) Option {
	return func(b *Bridge) { b.ID = id }
}

// WithRand sets the randomness used for generated deals.
func WithRand(r engine.RandSource) Option {
	return func(b *Bridge) { b.rng = r }
}

// WithBroadcast installs an event callback.
func WithBroadcast(fn func(ev GameEvent)) Option {
	return func(b *Bridge) { b.BroadcastFn = fn }
}

// New creates a deal in the Setup phase with no vulnerability and no dealer.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		ID:       uuid.New(),
		dealer:   engine.NoSeat,
		vul:      engine.VulNone,
		declarer: engine.NoSeat,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logrus.StandardLogger()
	}
	if b.rng == nil {
		b.rng = engine.NewXorShift(uint64(time.Now().UnixNano()))
	}
	b.log = b.log.WithField("game_id", b.ID)
	b.history.GameID = b.ID
	return b
}

// NewFromConfig creates a deal whose logger and shuffle seed come from cfg.
// Later options override the configured ones.
func NewFromConfig(cfg config.Config, opts ...Option) *Bridge {
	base := []Option{WithLogger(cfg.NewLogger(nil))}
	if cfg.DealSeed != 0 {
		base = append(base, WithRand(engine.NewXorShift(cfg.DealSeed)))
	}
	return New(append(base, opts...)...)
}

// NewRandomDeal creates a deal and applies the default opening: no
// vulnerability, a random dealer and a shuffled deal.
func NewRandomDeal(opts ...Option) *Bridge {
	b := New(opts...)
	b.Replay(b.DefaultActions())
	return b
}

// DefaultActions returns the opening used when a record supplies none:
// Vulnerable None, a random Dealer and a generated Deal.
func (b *Bridge) DefaultActions() []Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	return []Action{
		VulnerableAction{Value: engine.VulNone},
		DealerAction{Value: engine.RandomSeat(b.rng)},
		DealAction{Cards: engine.RandomDeal(b.rng)},
	}
}

// ---------------------------------------------------------------------------
// Action entry points
// ---------------------------------------------------------------------------

// Simulate applies one action. On failure the deal is left exactly as it
// was; the error is logged and returned in the Outcome.
func (b *Bridge) Simulate(a Action) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.simulate(a, Encode(a))
}

// SimulateRaw parses raw and applies it. Shape errors produce a failed
// Outcome wrapping ErrMalformedAction.
func (b *Bridge) SimulateRaw(raw RawAction) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := ParseAction(raw)
	if err != nil {
		return b.record(raw, err)
	}
	return b.simulate(a, raw)
}

// Replay applies actions in order, continuing past failures.
func (b *Bridge) Replay(actions []Action) []Outcome {
	out := make([]Outcome, 0, len(actions))
	for _, a := range actions {
		out = append(out, b.Simulate(a))
	}
	return out
}

// ReplayRaw is Replay for wire-form actions.
func (b *Bridge) ReplayRaw(raws []RawAction) []Outcome {
	out := make([]Outcome, 0, len(raws))
	for _, r := range raws {
		out = append(out, b.SimulateRaw(r))
	}
	return out
}

// Outcomes returns every outcome so far, in submission order.
func (b *Bridge) Outcomes() []Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Outcome(nil), b.outcomes...)
}

// Failures returns only the rejected actions' outcomes.
func (b *Bridge) Failures() []Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Outcome
	for _, o := range b.outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// record appends the outcome for raw and logs failures.
func (b *Bridge) record(raw RawAction, err error) Outcome {
	o := Outcome{
		Seq:    len(b.outcomes) + 1,
		Action: raw,
		Phase:  b.phase,
		Err:    err,
	}
	if err != nil {
		o.Error = err.Error()
		b.log.WithFields(logrus.Fields{
			"seq":    o.Seq,
			"action": raw.Name,
			"phase":  b.phase,
		}).WithError(err).Warn("action rejected")
		b.fireEvent(GameEvent{
			Type:    EventRejected,
			Seq:     o.Seq,
			Seat:    raw.Player,
			Payload: map[string]interface{}{"action": string(raw.Name), "message": o.Error},
		})
	}
	b.outcomes = append(b.outcomes, o)
	return o
}

// fireEvent passes ev to BroadcastFn if one is set.
func (b *Bridge) fireEvent(ev GameEvent) {
	if b.BroadcastFn == nil {
		return
	}
	ev.Phase = b.phase
	b.BroadcastFn(ev)
}

// setPhase advances the phase and logs the transition.
func (b *Bridge) setPhase(p Phase) {
	if p == b.phase {
		return
	}
	b.log.WithFields(logrus.Fields{"from": b.phase, "to": p}).Info("phase change")
	b.phase = p
}

// ---------------------------------------------------------------------------
// Read accessors
// ---------------------------------------------------------------------------

// Phase returns the current phase.
func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Hands returns a copy of the current hands.
func (b *Bridge) Hands() engine.Hands {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hands
}

// Contract returns the final contract once the auction has ended.
func (b *Bridge) Contract() (engine.Contract, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.contract, b.phase >= PhasePlay
}

// Declarer returns the declarer; NoSeat before the auction ends or on a
// pass-out.
func (b *Bridge) Declarer() engine.Seat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.declarer
}

// TricksMade returns the tricks won so far by the declaring side.
func (b *Bridge) TricksMade() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.made
}

// Scores returns the recorded score strings, e.g. ["NS 420"].
func (b *Bridge) Scores() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.history.Scores...)
}

// History returns a copy of the deal's history.
func (b *Bridge) History() GameHistory {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.clone()
}
