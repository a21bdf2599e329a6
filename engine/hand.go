package engine

import "math/bits"

// Hand is a set of cards held by one seat, stored as a 52-bit mask indexed
// by Card.Index.
type Hand uint64

// suitMask covers the 13 bits of the clubs suit; shift by 13*suit for others.
const suitMask Hand = 1<<NumRanks - 1

// Has reports whether the hand holds c.
func (h Hand) Has(c Card) bool {
	return c.Valid() && h&(1<<uint(c.Index())) != 0
}

// With returns the hand with c added.
func (h Hand) With(c Card) Hand { return h | 1<<uint(c.Index()) }

// Without returns the hand with c removed.
func (h Hand) Without(c Card) Hand { return h &^ (1 << uint(c.Index())) }

// Len returns the number of cards held.
func (h Hand) Len() int { return bits.OnesCount64(uint64(h)) }

// HasSuit reports whether the hand holds any card of suit s.
func (h Hand) HasSuit(s Suit) bool { return h.OfSuit(s) != 0 }

// OfSuit returns only the cards of suit s.
func (h Hand) OfSuit(s Suit) Hand {
	return h & (suitMask << (uint(s) * NumRanks))
}

// Cards returns the held cards sorted by suit (clubs first) then rank.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Len())
	for m := uint64(h); m != 0; m &= m - 1 {
		out = append(out, CardFromIndex(bits.TrailingZeros64(m)))
	}
	return out
}

// HandOf builds a hand from the given cards. Duplicates collapse.
func HandOf(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h = h.With(c)
	}
	return h
}

// Hands holds every seat's hand, indexed by Seat.
type Hands [NumSeats]Hand

// Total returns the number of cards across all hands.
func (hs *Hands) Total() int {
	n := 0
	for _, h := range hs {
		n += h.Len()
	}
	return n
}

// Holder returns the seat holding c, or NoSeat.
func (hs *Hands) Holder(c Card) Seat {
	for s, h := range hs {
		if h.Has(c) {
			return Seat(s)
		}
	}
	return NoSeat
}
