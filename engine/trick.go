package engine

import "fmt"

// TricksPerDeal is the number of tricks played when a contract exists.
const TricksPerDeal = 13

// Play is one card contributed to a trick.
type Play struct {
	Seat Seat
	Card Card
}

// Trick holds the (up to) four plays of a single trick.
type Trick struct {
	leader   Seat
	trump    Suit
	hasTrump bool
	plays    [NumSeats]Play
	n        uint8
}

// NewTrick starts a trick led by leader under the given strain. NoTrump
// means no suit outranks the lead suit.
func NewTrick(leader Seat, denom Denomination) *Trick {
	t := &Trick{leader: leader}
	t.trump, t.hasTrump = denom.Trump()
	return t
}

// Leader returns the seat that led (or will lead) the trick.
func (t *Trick) Leader() Seat { return t.leader }

// Trump returns the trump suit, if any.
func (t *Trick) Trump() (Suit, bool) { return t.trump, t.hasTrump }

// Len returns the number of cards played so far.
func (t *Trick) Len() int { return int(t.n) }

// IsComplete reports whether all four seats have played.
func (t *Trick) IsComplete() bool { return t.n == NumSeats }

// Plays returns a copy of the cards played so far, in play order.
func (t *Trick) Plays() []Play {
	out := make([]Play, t.n)
	copy(out, t.plays[:t.n])
	return out
}

// LeadSuit returns the suit of the first card played, if any.
func (t *Trick) LeadSuit() (Suit, bool) {
	if t.n == 0 {
		return 0, false
	}
	return t.plays[0].Card.Suit(), true
}

// NextSeat returns the seat due to play next.
func (t *Trick) NextSeat() (Seat, error) {
	if !t.leader.Valid() {
		return NoSeat, ErrNoLeader
	}
	return t.leader.Offset(int(t.n)), nil
}

// checkCard validates a play without mutating anything.
func (t *Trick) checkCard(seat Seat, card Card, hands *Hands) error {
	if t.IsComplete() {
		return fmt.Errorf("%w: trick already complete", ErrIllegalPlay)
	}
	next, err := t.NextSeat()
	if err != nil {
		return err
	}
	if !seat.Valid() {
		return fmt.Errorf("%w: invalid seat %d", ErrIllegalPlay, seat)
	}
	if seat != next {
		return fmt.Errorf("%w: it is %s's turn, not %s", ErrIllegalPlay, next, seat)
	}
	if !card.Valid() {
		return fmt.Errorf("%w: invalid card 0x%02x", ErrIllegalPlay, uint8(card))
	}
	hand := hands[seat]
	if !hand.Has(card) {
		return fmt.Errorf("%w: %s does not hold %s", ErrIllegalPlay, seat, card)
	}
	if lead, ok := t.LeadSuit(); ok && card.Suit() != lead && hand.HasSuit(lead) {
		return fmt.Errorf("%w: %s must follow %s with %s", ErrIllegalPlay, seat, lead, card)
	}
	return nil
}

// CanPlay reports whether seat may play card now.
func (t *Trick) CanPlay(seat Seat, card Card, hands *Hands) bool {
	return t.checkCard(seat, card, hands) == nil
}

// AddCard plays card from seat's hand into the trick. The card is removed
// from hands on success; on failure nothing changes. complete reports
// whether this was the fourth card.
func (t *Trick) AddCard(seat Seat, card Card, hands *Hands) (complete bool, err error) {
	if err := t.checkCard(seat, card, hands); err != nil {
		return false, err
	}
	hands[seat] = hands[seat].Without(card)
	t.plays[t.n] = Play{Seat: seat, Card: card}
	t.n++
	return t.IsComplete(), nil
}

// priority orders plays: trumps over the lead suit over discards, then rank.
func (t *Trick) priority(c Card, lead Suit) int {
	cat := 0
	switch {
	case t.hasTrump && c.Suit() == t.trump:
		cat = 2
	case c.Suit() == lead:
		cat = 1
	}
	return cat*NumRanks + int(c.Rank())
}

// Winner returns the seat that won the completed trick.
func (t *Trick) Winner() (Seat, error) {
	if !t.IsComplete() {
		return NoSeat, fmt.Errorf("%w: trick has %d of %d cards", ErrPrecondition, t.n, NumSeats)
	}
	lead := t.plays[0].Card.Suit()
	best := t.plays[0]
	for _, p := range t.plays[1:] {
		if t.priority(p.Card, lead) > t.priority(best.Card, lead) {
			best = p
		}
	}
	return best.Seat, nil
}
