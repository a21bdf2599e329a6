package engine

import (
	"testing"
)

// TestCallIndexRoundTrip covers all 38 call indices.
func TestCallIndexRoundTrip(t *testing.T) {
	for i := 0; i < NumCalls; i++ {
		c := CallFromIndex(i)
		if !c.Valid() {
			t.Fatalf("CallFromIndex(%d) = %+v is malformed", i, c)
		}
		if c.Index() != i {
			t.Errorf("CallFromIndex(%d).Index() = %d", i, c.Index())
		}
	}
	if CallFromIndex(callIndexBidBase).String() != "1C" || CallFromIndex(NumCalls-1).String() != "7NT" {
		t.Error("bid indices out of order")
	}
	if (Call{Type: CallBid}).Index() != -1 {
		t.Error("malformed call should index to -1")
	}
}

// TestLegalCallsOpening allows Pass and all 35 bids before any bid.
func TestLegalCallsOpening(t *testing.T) {
	a := NewAuction(North)
	calls := a.LegalCallsList()
	if len(calls) != 36 {
		t.Fatalf("got %d legal calls, want 36", len(calls))
	}
	for _, c := range calls {
		if c.Type == CallDouble || c.Type == CallRedouble {
			t.Errorf("%s legal at opening", c)
		}
	}
}

// TestLegalCallsMatchIsLegal cross-checks the mask against IsLegal for a
// handful of auction positions.
func TestLegalCallsMatchIsLegal(t *testing.T) {
	positions := [][]string{
		nil,
		{"1S"},
		{"1S", "Pass"},
		{"1S", "X"},
		{"1S", "X", "Pass"},
		{"1S", "X", "XX"},
		{"Pass", "Pass", "7NT"},
		{"1C", "Pass", "Pass", "Pass"},
	}
	for _, pos := range positions {
		a, _ := runAuction(t, East, pos...)
		mask := a.LegalCalls()
		seat := a.CurrentSeat()
		for i := 0; i < NumCalls; i++ {
			c := CallFromIndex(i)
			inMask := mask>>i&1 == 1
			if inMask != a.IsLegal(seat, c) {
				t.Errorf("%v: %s mask=%v IsLegal=%v", pos, c, inMask, !inMask)
			}
		}
	}
}

// TestLegalCardsFollowSuit restricts to the lead suit when held.
func TestLegalCardsFollowSuit(t *testing.T) {
	var hs Hands
	hs[North] = hand("HA")
	hs[East] = hand("H2", "H9", "SA", "CK")
	hs[South] = hand("SK", "D4")

	tr := NewTrick(North, NoTrump)
	if got := tr.LegalCards(East, &hs); got != 0 {
		t.Errorf("East off turn has legal cards %v", got.Cards())
	}
	if got := tr.LegalCards(North, &hs); got != hs[North] {
		t.Errorf("leader may play anything, got %v", got.Cards())
	}
	playAll(t, tr, &hs, Play{North, mc("HA")})

	if got := tr.LegalCards(East, &hs); got != hand("H2", "H9") {
		t.Errorf("East legal = %v, want hearts only", got.Cards())
	}
	playAll(t, tr, &hs, Play{East, mc("H9")})

	if got := tr.LegalCards(South, &hs); got != hand("SK", "D4") {
		t.Errorf("void South legal = %v, want whole hand", got.Cards())
	}
}
