package engine

import "fmt"

// AuctionEntry is one call in the auction record.
type AuctionEntry struct {
	Seat Seat
	Call Call
}

// AuctionStatus is the result of a successfully applied call.
type AuctionStatus uint8

const (
	AuctionInProgress AuctionStatus = iota
	AuctionFinished
)

func (s AuctionStatus) String() string {
	if s == AuctionFinished {
		return "finished"
	}
	return "in progress"
}

// Auction tracks the calls of one deal and decides contract and declarer.
type Auction struct {
	dealer  Seat
	calls   []AuctionEntry
	lastBid int // index into calls of the most recent bid, -1 if none
}

// NewAuction starts an empty auction opened by dealer. With an invalid
// dealer the auction has no seat on turn and every call fails with
// ErrNoDealer.
func NewAuction(dealer Seat) *Auction {
	return &Auction{
		dealer:  dealer,
		calls:   make([]AuctionEntry, 0, 16),
		lastBid: -1,
	}
}

// Dealer returns the seat that opened the auction.
func (a *Auction) Dealer() Seat { return a.dealer }

// Len returns the number of calls made so far.
func (a *Auction) Len() int { return len(a.calls) }

// Calls returns a copy of the call log.
func (a *Auction) Calls() []AuctionEntry {
	out := make([]AuctionEntry, len(a.calls))
	copy(out, a.calls)
	return out
}

// CurrentSeat returns the seat whose turn it is to call, or NoSeat when
// the auction has no valid dealer.
func (a *Auction) CurrentSeat() Seat {
	if !a.dealer.Valid() {
		return NoSeat
	}
	return a.dealer.Offset(len(a.calls))
}

// LastBid returns the most recent bid, if any.
func (a *Auction) LastBid() (Call, bool) {
	if a.lastBid < 0 {
		return Call{}, false
	}
	return a.calls[a.lastBid].Call, true
}

// lastAction returns the most recent non-Pass entry.
func (a *Auction) lastAction() (AuctionEntry, bool) {
	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.calls[i].Call.Type != CallPass {
			return a.calls[i], true
		}
	}
	return AuctionEntry{}, false
}

// IsLegal reports whether seat may make call now.
func (a *Auction) IsLegal(seat Seat, call Call) bool {
	return a.checkCall(seat, call) == nil
}

// checkCall returns nil if the call is legal, or an error wrapping
// ErrIllegalCall describing why not. A dealerless auction reports ErrNoDealer.
func (a *Auction) checkCall(seat Seat, call Call) error {
	if !a.dealer.Valid() {
		return ErrNoDealer
	}
	if a.IsFinished() {
		return fmt.Errorf("%w: auction is over", ErrIllegalCall)
	}
	if !seat.Valid() {
		return fmt.Errorf("%w: invalid seat %d", ErrIllegalCall, seat)
	}
	if turn := a.CurrentSeat(); seat != turn {
		return fmt.Errorf("%w: it is %s's turn, not %s", ErrIllegalCall, turn, seat)
	}
	if !call.Valid() {
		return fmt.Errorf("%w: malformed call (type %d, level %d, denomination %d)",
			ErrIllegalCall, call.Type, call.Level, call.Denom)
	}

	switch call.Type {
	case CallPass:
		return nil

	case CallDouble:
		last, ok := a.lastAction()
		if !ok || !last.Call.IsBid() {
			return fmt.Errorf("%w: %s may only double a bid", ErrIllegalCall, seat)
		}
		if last.Seat.Side() == seat.Side() {
			return fmt.Errorf("%w: %s cannot double own side's %s", ErrIllegalCall, seat, last.Call)
		}
		return nil

	case CallRedouble:
		last, ok := a.lastAction()
		if !ok || last.Call.Type != CallDouble {
			return fmt.Errorf("%w: %s may only redouble a double", ErrIllegalCall, seat)
		}
		if last.Seat.Side() == seat.Side() {
			return fmt.Errorf("%w: %s cannot redouble own side's double", ErrIllegalCall, seat)
		}
		return nil
	}

	if prev, ok := a.LastBid(); ok && !call.Beats(prev) {
		return fmt.Errorf("%w: %s does not overcall %s", ErrIllegalCall, call, prev)
	}
	return nil
}

// ApplyCall records call for seat. Illegal calls leave the auction untouched.
func (a *Auction) ApplyCall(seat Seat, call Call) (AuctionStatus, error) {
	if err := a.checkCall(seat, call); err != nil {
		return AuctionInProgress, err
	}
	a.calls = append(a.calls, AuctionEntry{Seat: seat, Call: call})
	if call.IsBid() {
		a.lastBid = len(a.calls) - 1
	}
	if a.IsFinished() {
		return AuctionFinished, nil
	}
	return AuctionInProgress, nil
}

// IsFinished reports whether the auction has terminated: either the first
// four calls were all Pass, or three Passes followed the last bid.
func (a *Auction) IsFinished() bool {
	if a.lastBid < 0 {
		if len(a.calls) < 4 {
			return false
		}
		for _, e := range a.calls[:4] {
			if e.Call.Type != CallPass {
				return false
			}
		}
		return true
	}
	after := a.calls[a.lastBid+1:]
	if len(after) < 3 {
		return false
	}
	for _, e := range after[len(after)-3:] {
		if e.Call.Type != CallPass {
			return false
		}
	}
	return true
}

// Contract returns the final contract. The risk is set by the last Double
// or Redouble made after the final bid.
func (a *Auction) Contract() (Contract, error) {
	if !a.IsFinished() {
		return Contract{}, ErrNotFinished
	}
	if a.lastBid < 0 {
		return Contract{}, nil
	}
	bid := a.calls[a.lastBid].Call
	c := Contract{Level: bid.Level, Denom: bid.Denom}
	for _, e := range a.calls[a.lastBid+1:] {
		switch e.Call.Type {
		case CallDouble:
			c.Risk = RiskDoubled
		case CallRedouble:
			c.Risk = RiskRedoubled
		}
	}
	return c, nil
}

// Declarer returns the first player of the side that won the contract to
// have bid its denomination. A passed-out auction yields NoSeat.
func (a *Auction) Declarer() (Seat, error) {
	if !a.IsFinished() {
		return NoSeat, ErrNotFinished
	}
	if a.lastBid < 0 {
		return NoSeat, nil
	}
	final := a.calls[a.lastBid]
	side := final.Seat.Side()
	for _, e := range a.calls[:a.lastBid+1] {
		if e.Call.IsBid() && e.Call.Denom == final.Call.Denom && side.Has(e.Seat) {
			return e.Seat, nil
		}
	}
	// Unreachable: the final bid itself qualifies.
	return final.Seat, nil
}
