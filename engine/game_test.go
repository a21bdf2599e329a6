package engine

import (
	"errors"
	"testing"
)

// seqSource replays fixed values, then zeros (test RandSource).
type seqSource struct {
	vals []uint64
	i    int
}

func (s *seqSource) Uint64() uint64 {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	return v
}

// TestNewDeck verifies the deck holds all 52 cards once.
func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	var seen Hand
	for i, c := range deck {
		if !c.Valid() {
			t.Fatalf("deck[%d] invalid", i)
		}
		if seen.Has(c) {
			t.Errorf("duplicate %s", c)
		}
		seen = seen.With(c)
	}
	if seen.Len() != DeckSize {
		t.Errorf("got %d unique cards, want %d", seen.Len(), DeckSize)
	}
}

// TestXorShiftSeedZero verifies that seed 0 is corrected and still advances.
func TestXorShiftSeedZero(t *testing.T) {
	a, b := NewXorShift(0), NewXorShift(1)
	for i := 0; i < 5; i++ {
		x, y := a.Uint64(), b.Uint64()
		if x != y {
			t.Fatalf("seed 0 and 1 diverge at %d", i)
		}
		if x == 0 {
			t.Fatal("xorshift produced 0")
		}
	}
}

// TestShuffleDeterministic checks equal seeds give equal permutations and
// that shuffling conserves the cards.
func TestShuffleDeterministic(t *testing.T) {
	d1, d2 := NewDeck(), NewDeck()
	Shuffle(NewXorShift(42), d1[:])
	Shuffle(NewXorShift(42), d2[:])
	if d1 != d2 {
		t.Error("same seed produced different shuffles")
	}
	if d1 == NewDeck() {
		t.Error("shuffle left the deck in order")
	}
	if HandOf(d1[:]...).Len() != DeckSize {
		t.Error("shuffle lost cards")
	}
}

// TestShuffleZeroSourceIsRotation pins Fisher-Yates against a source that
// always returns 0: every element swaps with index 0.
func TestShuffleZeroSourceIsRotation(t *testing.T) {
	cards := []Card{mc("C2"), mc("C3"), mc("C4"), mc("C5")}
	Shuffle(&seqSource{}, cards)
	want := []string{"C3", "C4", "C5", "C2"}
	for i, c := range cards {
		if c.String() != want[i] {
			t.Errorf("cards[%d] = %s, want %s", i, c, want[i])
		}
	}
}

// TestRandomDealOrder checks deal blocks go N, W, S, E.
func TestRandomDealOrder(t *testing.T) {
	deal := RandomDeal(&seqSource{})
	if len(deal) != DeckSize {
		t.Fatalf("len = %d", len(deal))
	}
	for i, dc := range deal {
		if want := DealOrder[i/HandSize]; dc.Seat != want {
			t.Fatalf("deal[%d] to %s, want %s", i, dc.Seat, want)
		}
	}
	hs, err := NewHands(deal)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateHands(&hs); err != nil {
		t.Fatal(err)
	}
}

// TestRandomDealConservation deals many seeds and checks the union of the
// hands is exactly the deck.
func TestRandomDealConservation(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		hs, err := NewHands(RandomDeal(NewXorShift(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		var all Hand
		for _, h := range hs {
			if h.Len() != HandSize {
				t.Fatalf("seed %d: hand of %d", seed, h.Len())
			}
			all |= h
		}
		if all.Len() != DeckSize {
			t.Fatalf("seed %d: union has %d cards", seed, all.Len())
		}
	}
}

// TestNewHandsRejects covers the invalid-deal shapes.
func TestNewHandsRejects(t *testing.T) {
	good := RandomDeal(NewXorShift(3))

	short := append([]DealtCard(nil), good[:51]...)

	dup := append([]DealtCard(nil), good...)
	dup[51].Card = dup[0].Card

	lopsided := append([]DealtCard(nil), good...)
	lopsided[0].Seat = lopsided[51].Seat

	badSeat := append([]DealtCard(nil), good...)
	badSeat[5].Seat = NoSeat

	badCard := append([]DealtCard(nil), good...)
	badCard[7].Card = EmptyCard

	cases := map[string][]DealtCard{
		"51 cards":     short,
		"duplicate":    dup,
		"12 and 14":    lopsided,
		"invalid seat": badSeat,
		"invalid card": badCard,
		"empty":        nil,
	}
	for name, cards := range cases {
		if _, err := NewHands(cards); !errors.Is(err, ErrInvalidDeal) {
			t.Errorf("%s: err = %v, want ErrInvalidDeal", name, err)
		}
	}
}

// TestRandomSeat stays within the table.
func TestRandomSeat(t *testing.T) {
	r := NewXorShift(99)
	counts := map[Seat]int{}
	for i := 0; i < 400; i++ {
		s := RandomSeat(r)
		if !s.Valid() {
			t.Fatalf("RandomSeat = %d", s)
		}
		counts[s]++
	}
	if len(counts) != NumSeats {
		t.Errorf("only %d seats drawn", len(counts))
	}
}
