// Package engine implements the rules of one deal of contract bridge.
//
// It holds the value types of the game (cards, seats, calls, contracts),
// the auction state machine, the single-trick engine and the duplicate
// scoring calculator. Nothing here logs or does I/O; the service adapter
// sequences actions and owns the phase state machine.
package engine

import "fmt"

const (
	DeckSize = NumSuits * NumRanks
	HandSize = DeckSize / NumSeats
)

// DealOrder is the order in which a generated deal hands out its four
// blocks of HandSize cards.
var DealOrder = [NumSeats]Seat{North, West, South, East}

// ---------------------------------------------------------------------------
// Seedable RNG
// ---------------------------------------------------------------------------

// RandSource supplies the randomness for shuffling and random dealers.
// Tests substitute a fixed sequence.
type RandSource interface {
	Uint64() uint64
}

// XorShift is a xorshift64 generator. The zero value is not usable; use
// NewXorShift.
type XorShift struct {
	state uint64
}

// NewXorShift seeds a generator. A zero seed is corrected to 1, since
// xorshift can't leave 0.
func NewXorShift(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

// Uint64 returns the next value in the sequence.
func (x *XorShift) Uint64() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return s
}

// RandN returns a number in [0, n).
func RandN(r RandSource, n uint64) uint64 {
	return r.Uint64() % n
}

// RandomSeat picks a seat uniformly from r.
func RandomSeat(r RandSource) Seat {
	return Seats[RandN(r, NumSeats)]
}

// ---------------------------------------------------------------------------
// Deck and dealing
// ---------------------------------------------------------------------------

// NewDeck returns the 52 cards ordered by suit (clubs first) then rank.
func NewDeck() [DeckSize]Card {
	var deck [DeckSize]Card
	for i := range deck {
		deck[i] = CardFromIndex(i)
	}
	return deck
}

// Shuffle permutes cards in place (Fisher-Yates).
func Shuffle(r RandSource, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(RandN(r, uint64(i+1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DealtCard assigns one card to a seat.
type DealtCard struct {
	Seat Seat
	Card Card
}

// RandomDeal shuffles a fresh deck and hands consecutive blocks of
// HandSize cards to the seats in DealOrder.
func RandomDeal(r RandSource) []DealtCard {
	deck := NewDeck()
	Shuffle(r, deck[:])

	out := make([]DealtCard, 0, DeckSize)
	for i, seat := range DealOrder {
		for _, c := range deck[i*HandSize : (i+1)*HandSize] {
			out = append(out, DealtCard{Seat: seat, Card: c})
		}
	}
	return out
}

// NewHands builds the four hands from a complete deal. The order of cards
// is irrelevant, but every card must appear exactly once and every seat
// must receive exactly HandSize cards; otherwise the error wraps
// ErrInvalidDeal.
func NewHands(cards []DealtCard) (Hands, error) {
	var hs Hands
	if len(cards) != DeckSize {
		return Hands{}, fmt.Errorf("%w: %d cards, want %d", ErrInvalidDeal, len(cards), DeckSize)
	}
	for i, dc := range cards {
		if !dc.Seat.Valid() {
			return Hands{}, fmt.Errorf("%w: card %d has invalid seat %d", ErrInvalidDeal, i, dc.Seat)
		}
		if !dc.Card.Valid() {
			return Hands{}, fmt.Errorf("%w: card %d is invalid (0x%02x)", ErrInvalidDeal, i, uint8(dc.Card))
		}
		if holder := hs.Holder(dc.Card); holder != NoSeat {
			return Hands{}, fmt.Errorf("%w: %s dealt twice (%s and %s)", ErrInvalidDeal, dc.Card, holder, dc.Seat)
		}
		hs[dc.Seat] = hs[dc.Seat].With(dc.Card)
	}
	if err := ValidateHands(&hs); err != nil {
		return Hands{}, err
	}
	return hs, nil
}

// ValidateHands checks that hs is a complete deal: HandSize cards per seat
// and no card held twice.
func ValidateHands(hs *Hands) error {
	var seen Hand
	for _, s := range Seats {
		h := hs[s]
		if n := h.Len(); n != HandSize {
			return fmt.Errorf("%w: %s holds %d cards, want %d", ErrInvalidDeal, s, n, HandSize)
		}
		if seen&h != 0 {
			return fmt.Errorf("%w: %s shares cards with another seat", ErrInvalidDeal, s)
		}
		seen |= h
	}
	return nil
}
