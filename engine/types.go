package engine

import (
	"fmt"
	"strconv"
)

// Suit is packed into the upper 4 bits of Card.
type Suit uint8

const (
	SuitClubs    Suit = 0
	SuitDiamonds Suit = 1
	SuitHearts   Suit = 2
	SuitSpades   Suit = 3
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

var suitLetters = [NumSuits]byte{'C', 'D', 'H', 'S'}

// String returns the single-letter suit token.
func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return string(suitLetters[s])
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool { return s < NumSuits }

// ParseSuit parses a single-letter suit token.
func ParseSuit(tok string) (Suit, error) {
	if len(tok) == 1 {
		for i, l := range suitLetters {
			if tok[0] == l {
				return Suit(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown suit %q", tok)
}

// Rank is packed into the lower 4 bits of Card, ordered low to high.
type Rank uint8

const (
	RankTwo   Rank = 0
	RankThree Rank = 1
	RankFour  Rank = 2
	RankFive  Rank = 3
	RankSix   Rank = 4
	RankSeven Rank = 5
	RankEight Rank = 6
	RankNine  Rank = 7
	RankTen   Rank = 8
	RankJack  Rank = 9
	RankQueen Rank = 10
	RankKing  Rank = 11
	RankAce   Rank = 12
)

// NumRanks is the number of ranks per suit.
const NumRanks = 13

var rankLetters = [NumRanks]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

// String returns the single-letter rank token.
func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return string(rankLetters[r])
}

// Valid reports whether r is a real rank.
func (r Rank) Valid() bool { return r < NumRanks }

// ParseRank parses a single-letter rank token ("2".."9", "T", "J", "Q", "K", "A").
func ParseRank(tok string) (Rank, error) {
	if len(tok) == 1 {
		for i, l := range rankLetters {
			if tok[0] == l {
				return Rank(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown rank %q", tok)
}

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card((uint8(suit) << 4) | (uint8(rank) & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() Suit { return Suit(uint8(c) >> 4) }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() Rank { return Rank(uint8(c) & 0x0F) }

// Valid reports whether c encodes one of the 52 cards.
func (c Card) Valid() bool { return c.Suit().Valid() && c.Rank().Valid() }

// Index returns the dense 0..51 position of the card (clubs first, two low).
func (c Card) Index() int { return int(c.Suit())*NumRanks + int(c.Rank()) }

// CardFromIndex is the inverse of Card.Index.
func CardFromIndex(i int) Card {
	return NewCard(Suit(i/NumRanks), Rank(i%NumRanks))
}

// String returns the suit+rank token, e.g. "SA" or "C7".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Suit().String() + c.Rank().String()
}

// ParseCard parses a two-letter suit+rank token.
func ParseCard(tok string) (Card, error) {
	if len(tok) != 2 {
		return EmptyCard, fmt.Errorf("invalid card token %q", tok)
	}
	s, err := ParseSuit(tok[:1])
	if err != nil {
		return EmptyCard, fmt.Errorf("invalid card token %q: %w", tok, err)
	}
	r, err := ParseRank(tok[1:])
	if err != nil {
		return EmptyCard, fmt.Errorf("invalid card token %q: %w", tok, err)
	}
	return NewCard(s, r), nil
}

func (c Card) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ---------------------------------------------------------------------------
// Seats and sides
// ---------------------------------------------------------------------------

// Seat is a compass position; play proceeds N → E → S → W → N.
type Seat uint8

const (
	North Seat = 0
	East  Seat = 1
	South Seat = 2
	West  Seat = 3
)

// NumSeats is the number of players at the table.
const NumSeats = 4

// NoSeat represents the absence of a seat (no dealer yet, no declarer).
const NoSeat Seat = 0xFF

// Seats lists every seat in rotation order starting from North.
var Seats = [NumSeats]Seat{North, East, South, West}

var seatLetters = [NumSeats]byte{'N', 'E', 'S', 'W'}

func (s Seat) String() string {
	if !s.Valid() {
		return "-"
	}
	return string(seatLetters[s])
}

// Valid reports whether s is one of the four real seats.
func (s Seat) Valid() bool { return s < NumSeats }

// Next returns the seat to the left (next in rotation).
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// LeftOf returns the seat on s's left, who leads against s as declarer.
func (s Seat) LeftOf() Seat { return s.Next() }

// Offset returns the seat n places after s in rotation.
func (s Seat) Offset(n int) Seat { return Seat((int(s) + n%NumSeats + NumSeats) % NumSeats) }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Side returns the partnership the seat belongs to.
func (s Seat) Side() Side {
	if s == North || s == South {
		return SideNS
	}
	return SideEW
}

// ParseSeat parses a single-letter seat token.
func ParseSeat(tok string) (Seat, error) {
	if len(tok) == 1 {
		for i, l := range seatLetters {
			if tok[0] == l {
				return Seat(i), nil
			}
		}
	}
	return NoSeat, fmt.Errorf("unknown seat %q", tok)
}

func (s Seat) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Seat) UnmarshalText(b []byte) error {
	parsed, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Side is a partnership.
type Side uint8

const (
	SideNS Side = 0
	SideEW Side = 1
)

func (s Side) String() string {
	if s == SideNS {
		return "NS"
	}
	return "EW"
}

// Opponent returns the other partnership.
func (s Side) Opponent() Side { return 1 - s }

// Has reports whether seat belongs to the partnership.
func (s Side) Has(seat Seat) bool { return seat.Valid() && seat.Side() == s }

// ---------------------------------------------------------------------------
// Denominations, risk, vulnerability
// ---------------------------------------------------------------------------

// Denomination is a bid strain, ordered C < D < H < S < NT.
type Denomination uint8

const (
	Clubs    Denomination = 0
	Diamonds Denomination = 1
	Hearts   Denomination = 2
	Spades   Denomination = 3
	NoTrump  Denomination = 4
)

// NumDenominations counts the five strains.
const NumDenominations = 5

var denomTokens = [NumDenominations]string{"C", "D", "H", "S", "NT"}

func (d Denomination) String() string {
	if !d.Valid() {
		return "?"
	}
	return denomTokens[d]
}

// Valid reports whether d is a real strain.
func (d Denomination) Valid() bool { return d < NumDenominations }

// Trump returns the trump suit for the strain; ok is false for no trump.
func (d Denomination) Trump() (suit Suit, ok bool) {
	if d >= NoTrump {
		return 0, false
	}
	return Suit(d), true
}

// ParseDenomination parses "C", "D", "H", "S" or "NT".
func ParseDenomination(tok string) (Denomination, error) {
	for i, t := range denomTokens {
		if tok == t {
			return Denomination(i), nil
		}
	}
	return 0, fmt.Errorf("unknown denomination %q", tok)
}

// Risk is the doubling state of a contract.
type Risk uint8

const (
	RiskNone      Risk = 0
	RiskDoubled   Risk = 1
	RiskRedoubled Risk = 2
)

func (r Risk) String() string {
	switch r {
	case RiskDoubled:
		return "X"
	case RiskRedoubled:
		return "XX"
	default:
		return ""
	}
}

// Valid reports whether r is a known risk.
func (r Risk) Valid() bool { return r <= RiskRedoubled }

// Multiplier returns 1, 2 or 4.
func (r Risk) Multiplier() int { return 1 << r }

// Vulnerability records which partnerships are vulnerable on the deal.
type Vulnerability uint8

const (
	VulNone Vulnerability = 0
	VulNS   Vulnerability = 1
	VulEW   Vulnerability = 2
	VulAll  Vulnerability = 3
)

var vulTokens = [4]string{"None", "NS", "EW", "All"}

func (v Vulnerability) String() string {
	if !v.Valid() {
		return "?"
	}
	return vulTokens[v]
}

// Valid reports whether v is one of the four states.
func (v Vulnerability) Valid() bool { return v <= VulAll }

// Covers reports whether the given side is vulnerable.
func (v Vulnerability) Covers(side Side) bool {
	switch v {
	case VulAll:
		return true
	case VulNS:
		return side == SideNS
	case VulEW:
		return side == SideEW
	}
	return false
}

// ParseVulnerability parses "None", "NS", "EW" or "All".
func ParseVulnerability(tok string) (Vulnerability, error) {
	for i, t := range vulTokens {
		if tok == t {
			return Vulnerability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown vulnerability %q", tok)
}

func (v Vulnerability) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Vulnerability) UnmarshalText(b []byte) error {
	parsed, err := ParseVulnerability(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

// CallType tags the Call variant.
type CallType uint8

const (
	CallPass     CallType = 0
	CallDouble   CallType = 1
	CallRedouble CallType = 2
	CallBid      CallType = 3
)

// Call is one auction call. Level and Denom are only meaningful for bids.
type Call struct {
	Type  CallType
	Level uint8
	Denom Denomination
}

// Pass returns the Pass call.
func Pass() Call { return Call{Type: CallPass} }

// Double returns the Double call.
func Double() Call { return Call{Type: CallDouble} }

// Redouble returns the Redouble call.
func Redouble() Call { return Call{Type: CallRedouble} }

// Bid returns a bid call. It is not validated; see Call.Valid.
func Bid(level uint8, denom Denomination) Call {
	return Call{Type: CallBid, Level: level, Denom: denom}
}

// IsBid reports whether the call names a level and strain.
func (c Call) IsBid() bool { return c.Type == CallBid }

// Valid reports whether the call is well formed.
func (c Call) Valid() bool {
	switch c.Type {
	case CallPass, CallDouble, CallRedouble:
		return c.Level == 0
	case CallBid:
		return c.Level >= 1 && c.Level <= 7 && c.Denom.Valid()
	}
	return false
}

// Rank returns the bid's position in the total order 1C < 1D < … < 7NT.
// Non-bids return -1.
func (c Call) Rank() int {
	if !c.IsBid() {
		return -1
	}
	return int(c.Level-1)*NumDenominations + int(c.Denom)
}

// Beats reports whether bid c is strictly higher than bid other.
func (c Call) Beats(other Call) bool { return c.Rank() > other.Rank() }

// String returns the call token: "Pass", "X", "XX" or e.g. "3NT".
func (c Call) String() string {
	switch c.Type {
	case CallPass:
		return "Pass"
	case CallDouble:
		return "X"
	case CallRedouble:
		return "XX"
	case CallBid:
		return strconv.Itoa(int(c.Level)) + c.Denom.String()
	}
	return "?"
}

// ParseCall parses a call token.
func ParseCall(tok string) (Call, error) {
	switch tok {
	case "Pass":
		return Pass(), nil
	case "X":
		return Double(), nil
	case "XX":
		return Redouble(), nil
	}
	if len(tok) < 2 || tok[0] < '1' || tok[0] > '7' {
		return Call{}, fmt.Errorf("invalid call token %q", tok)
	}
	d, err := ParseDenomination(tok[1:])
	if err != nil {
		return Call{}, fmt.Errorf("invalid call token %q: %w", tok, err)
	}
	return Bid(tok[0]-'0', d), nil
}

func (c Call) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Call) UnmarshalText(b []byte) error {
	parsed, err := ParseCall(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ---------------------------------------------------------------------------
// Contract
// ---------------------------------------------------------------------------

// Contract is the outcome of an auction. Level 0 means the deal was passed out.
type Contract struct {
	Level uint8
	Denom Denomination
	Risk  Risk
}

// PassedOut reports whether no contract was reached.
func (c Contract) PassedOut() bool { return c.Level == 0 }

// TricksNeeded returns the book plus level.
func (c Contract) TricksNeeded() int { return 6 + int(c.Level) }

// String returns e.g. "4S", "3NTX", "7CXX", or "Pass" for a passed-out deal.
func (c Contract) String() string {
	if c.PassedOut() {
		return "Pass"
	}
	return strconv.Itoa(int(c.Level)) + c.Denom.String() + c.Risk.String()
}

func (c Contract) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
