// internal/game/actions.go
package game

import (
	"errors"
	"fmt"

	engine "github.com/jason-s-yu/bridge/engine"
)

// ErrMalformedAction reports an action whose shape or tokens are wrong.
var ErrMalformedAction = errors.New("malformed action")

// ActionName tags each action variant.
type ActionName string

const (
	ActionVulnerable ActionName = "Vulnerable"
	ActionDealer     ActionName = "Dealer"
	ActionDeal       ActionName = "Deal"
	ActionAuction    ActionName = "Auction"
	ActionPlay       ActionName = "Play"
)

// SkipToken is the Play value that stands for "no card" in recorded data.
const SkipToken = "*"

// Action is one step of a deal. The set of variants is closed.
type Action interface {
	Name() ActionName
	isAction()
}

// VulnerableAction sets the deal's vulnerability.
type VulnerableAction struct {
	Value engine.Vulnerability
}

// DealerAction sets the seat that calls first.
type DealerAction struct {
	Value engine.Seat
}

// DealAction distributes all 52 cards.
type DealAction struct {
	Cards []engine.DealtCard
}

// AuctionAction is a call by Player.
type AuctionAction struct {
	Player engine.Seat
	Call   engine.Call
}

// PlayAction is a card played by Player. Skip actions carry no card and
// change nothing.
type PlayAction struct {
	Player engine.Seat
	Card   engine.Card
	Skip   bool
}

func (VulnerableAction) Name() ActionName { return ActionVulnerable }
func (DealerAction) Name() ActionName     { return ActionDealer }
func (DealAction) Name() ActionName       { return ActionDeal }
func (AuctionAction) Name() ActionName    { return ActionAuction }
func (PlayAction) Name() ActionName       { return ActionPlay }

func (VulnerableAction) isAction() {}
func (DealerAction) isAction()     {}
func (DealAction) isAction()       {}
func (AuctionAction) isAction()    {}
func (PlayAction) isAction()       {}

// ---------------------------------------------------------------------------
// Wire form
// ---------------------------------------------------------------------------

// RawCard is one entry of a Deal action's card list.
type RawCard struct {
	Seat string `json:"seat"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// RawAction is the tagged record produced by game-record readers, e.g.
// {"name":"Auction","player":"N","value":"1NT"}.
type RawAction struct {
	Name   ActionName `json:"name"`
	Value  string     `json:"value,omitempty"`
	Player string     `json:"player,omitempty"`
	Cards  []RawCard  `json:"cards,omitempty"`
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedAction, fmt.Sprintf(format, args...))
}

// ParseAction validates the shape of raw and converts its tokens. Only the
// fields the named action uses are read. Errors wrap ErrMalformedAction.
func ParseAction(raw RawAction) (Action, error) {
	switch raw.Name {
	case ActionVulnerable:
		v, err := engine.ParseVulnerability(raw.Value)
		if err != nil {
			return nil, malformed("Vulnerable: %v", err)
		}
		return VulnerableAction{Value: v}, nil

	case ActionDealer:
		s, err := engine.ParseSeat(raw.Value)
		if err != nil {
			return nil, malformed("Dealer: %v", err)
		}
		return DealerAction{Value: s}, nil

	case ActionDeal:
		if len(raw.Cards) == 0 {
			return nil, malformed("Deal: no cards")
		}
		cards := make([]engine.DealtCard, len(raw.Cards))
		for i, rc := range raw.Cards {
			dc, err := parseRawCard(rc)
			if err != nil {
				return nil, malformed("Deal: card %d: %v", i, err)
			}
			cards[i] = dc
		}
		return DealAction{Cards: cards}, nil

	case ActionAuction:
		p, err := engine.ParseSeat(raw.Player)
		if err != nil {
			return nil, malformed("Auction: %v", err)
		}
		c, err := engine.ParseCall(raw.Value)
		if err != nil {
			return nil, malformed("Auction: %v", err)
		}
		return AuctionAction{Player: p, Call: c}, nil

	case ActionPlay:
		p, err := engine.ParseSeat(raw.Player)
		if err != nil {
			return nil, malformed("Play: %v", err)
		}
		if raw.Value == SkipToken {
			return PlayAction{Player: p, Card: engine.EmptyCard, Skip: true}, nil
		}
		c, err := engine.ParseCard(raw.Value)
		if err != nil {
			return nil, malformed("Play: %v", err)
		}
		return PlayAction{Player: p, Card: c}, nil

	case "":
		return nil, malformed("missing name")
	}
	return nil, malformed("unknown action %q", raw.Name)
}

func parseRawCard(rc RawCard) (engine.DealtCard, error) {
	seat, err := engine.ParseSeat(rc.Seat)
	if err != nil {
		return engine.DealtCard{}, err
	}
	suit, err := engine.ParseSuit(rc.Suit)
	if err != nil {
		return engine.DealtCard{}, err
	}
	rank, err := engine.ParseRank(rc.Rank)
	if err != nil {
		return engine.DealtCard{}, err
	}
	return engine.DealtCard{Seat: seat, Card: engine.NewCard(suit, rank)}, nil
}

// Encode renders a typed action back into its wire form.
func Encode(a Action) RawAction {
	switch a := a.(type) {
	case VulnerableAction:
		return RawAction{Name: ActionVulnerable, Value: a.Value.String()}
	case DealerAction:
		return RawAction{Name: ActionDealer, Value: a.Value.String()}
	case DealAction:
		cards := make([]RawCard, len(a.Cards))
		for i, dc := range a.Cards {
			cards[i] = RawCard{Seat: dc.Seat.String(), Suit: dc.Card.Suit().String(), Rank: dc.Card.Rank().String()}
		}
		return RawAction{Name: ActionDeal, Cards: cards}
	case AuctionAction:
		return RawAction{Name: ActionAuction, Player: a.Player.String(), Value: a.Call.String()}
	case PlayAction:
		v := a.Card.String()
		if a.Skip {
			v = SkipToken
		}
		return RawAction{Name: ActionPlay, Player: a.Player.String(), Value: v}
	}
	return RawAction{}
}

// ---------------------------------------------------------------------------
// Outcomes
// ---------------------------------------------------------------------------

// Outcome records what happened to one submitted action.
type Outcome struct {
	Seq    int       `json:"seq"`
	Action RawAction `json:"action"`
	Phase  Phase     `json:"phase"` // phase after the action
	Err    error     `json:"-"`
	Error  string    `json:"error,omitempty"`
}

// OK reports whether the action was applied.
func (o Outcome) OK() bool { return o.Err == nil }
