package engine

// Call indices: 0 Pass, 1 Double, 2 Redouble, then the 35 bids in rank order.
const (
	CallIndexPass     = 0
	CallIndexDouble   = 1
	CallIndexRedouble = 2
	callIndexBidBase  = 3

	NumCalls = callIndexBidBase + 7*NumDenominations
)

// Index maps a call to its dense index, or -1 for a malformed call.
func (c Call) Index() int {
	if !c.Valid() {
		return -1
	}
	switch c.Type {
	case CallPass:
		return CallIndexPass
	case CallDouble:
		return CallIndexDouble
	case CallRedouble:
		return CallIndexRedouble
	}
	return callIndexBidBase + c.Rank()
}

// CallFromIndex is the inverse of Call.Index.
func CallFromIndex(i int) Call {
	switch {
	case i == CallIndexPass:
		return Pass()
	case i == CallIndexDouble:
		return Double()
	case i == CallIndexRedouble:
		return Redouble()
	}
	r := i - callIndexBidBase
	return Bid(uint8(r/NumDenominations)+1, Denomination(r%NumDenominations))
}

// LegalCalls returns a bitmask of legal call indices for the seat on turn.
// Bit i is set if CallFromIndex(i) may be made. Empty once finished.
func (a *Auction) LegalCalls() uint64 {
	var mask uint64
	if a.IsFinished() || !a.dealer.Valid() {
		return mask
	}
	seat := a.CurrentSeat()
	mask |= 1 << CallIndexPass

	if last, ok := a.lastAction(); ok && last.Seat.Side() != seat.Side() {
		switch last.Call.Type {
		case CallBid:
			mask |= 1 << CallIndexDouble
		case CallDouble:
			mask |= 1 << CallIndexRedouble
		}
	}

	first := 0
	if prev, ok := a.LastBid(); ok {
		first = prev.Rank() + 1
	}
	for r := first; r < 7*NumDenominations; r++ {
		mask |= 1 << (callIndexBidBase + r)
	}
	return mask
}

// LegalCallsList returns the legal calls in index order (allocates).
func (a *Auction) LegalCallsList() []Call {
	mask := a.LegalCalls()
	var calls []Call
	for i := 0; i < NumCalls; i++ {
		if mask>>i&1 == 1 {
			calls = append(calls, CallFromIndex(i))
		}
	}
	return calls
}

// LegalCards returns the cards seat may play to the trick: the whole hand,
// or only its lead-suit cards when it can follow. Empty when it is not
// seat's turn.
func (t *Trick) LegalCards(seat Seat, hands *Hands) Hand {
	next, err := t.NextSeat()
	if err != nil || t.IsComplete() || seat != next {
		return 0
	}
	hand := hands[seat]
	if lead, ok := t.LeadSuit(); ok && hand.HasSuit(lead) {
		return hand.OfSuit(lead)
	}
	return hand
}
