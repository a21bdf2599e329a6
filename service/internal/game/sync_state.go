// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/bridge/engine"
)

// SnapshotPlay is a card already played to the current trick.
type SnapshotPlay struct {
	Seat string `json:"seat"`
	Card string `json:"card"`
}

// Snapshot is the read-only view of a deal handed to callers that compare
// computed results with recorded ones.
type Snapshot struct {
	GameID     uuid.UUID           `json:"gameId"`
	Phase      Phase               `json:"phase"`
	Dealer     string              `json:"dealer,omitempty"`
	Vulnerable string              `json:"vulnerable"`
	Hands      map[string][]string `json:"hands"` // seat -> cards, clubs first, low to high
	// AuctionCalls lists call tokens in order; empty before the first call.
	AuctionCalls []string `json:"auctionCalls"`
	// CurrentPlayer is the seat due to act: the caller in the Auction
	// phase, the seat on play in the Play phase.
	CurrentPlayer string `json:"currentPlayer,omitempty"`
	// LegalCalls and LegalCards are what CurrentPlayer may submit next.
	LegalCalls   []string       `json:"legalCalls,omitempty"`
	LegalCards   []string       `json:"legalCards,omitempty"`
	Contract     string         `json:"contract,omitempty"`
	Declarer     string         `json:"declarer,omitempty"`
	TricksMade   int            `json:"tricksMade"`
	TrickNumber  int            `json:"trickNumber"` // 1-based trick in progress, 0 outside play
	CurrentTrick []SnapshotPlay `json:"currentTrick,omitempty"`
	Scores       []string       `json:"scores"`
}

// Snapshot returns the current state of the deal.
func (b *Bridge) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		GameID:       b.ID,
		Phase:        b.phase,
		Vulnerable:   b.vul.String(),
		Hands:        make(map[string][]string, engine.NumSeats),
		AuctionCalls: []string{},
		TricksMade:   b.made,
		Scores:       append([]string{}, b.history.Scores...),
	}
	if b.dealer.Valid() {
		s.Dealer = b.dealer.String()
	}

	for _, seat := range engine.Seats {
		cards := b.hands[seat].Cards()
		toks := make([]string, len(cards))
		for i, c := range cards {
			toks[i] = c.String()
		}
		s.Hands[seat.String()] = toks
	}

	if b.auction != nil {
		for _, e := range b.auction.Calls() {
			s.AuctionCalls = append(s.AuctionCalls, e.Call.String())
		}
		if b.phase == PhaseAuction {
			s.CurrentPlayer = b.auction.CurrentSeat().String()
			for _, c := range b.auction.LegalCallsList() {
				s.LegalCalls = append(s.LegalCalls, c.String())
			}
		}
	}

	if b.phase >= PhasePlay {
		s.Contract = b.contract.String()
		if b.declarer.Valid() {
			s.Declarer = b.declarer.String()
		}
	}

	if b.phase == PhasePlay && b.trick != nil {
		s.TrickNumber = len(b.history.Tricks) + 1
		for _, p := range b.trick.Plays() {
			s.CurrentTrick = append(s.CurrentTrick, SnapshotPlay{Seat: p.Seat.String(), Card: p.Card.String()})
		}
		if next, err := b.trick.NextSeat(); err == nil {
			s.CurrentPlayer = next.String()
			for _, c := range b.trick.LegalCards(next, &b.hands).Cards() {
				s.LegalCards = append(s.LegalCards, c.String())
			}
		}
	}
	return s
}

// CanPlay reports whether seat may play card right now, without applying it.
func (b *Bridge) CanPlay(seat engine.Seat, card engine.Card) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhasePlay || b.trick == nil {
		return false
	}
	return b.trick.CanPlay(seat, card, &b.hands)
}
