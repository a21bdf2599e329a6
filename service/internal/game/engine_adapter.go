// engine_adapter.go: per-action handlers that drive the engine package.
package game

import (
	"fmt"

	engine "github.com/jason-s-yu/bridge/engine"
	"github.com/sirupsen/logrus"
)

// simulate dispatches a parsed action. Every handler validates completely
// before touching b, so a returned error means nothing changed.
// Assumes lock is held by the caller.
func (b *Bridge) simulate(a Action, raw RawAction) Outcome {
	if b.phase == PhaseFinished {
		return b.record(raw, fmt.Errorf("%w: deal is finished", engine.ErrPrecondition))
	}

	var err error
	switch a := a.(type) {
	case VulnerableAction:
		err = b.handleVulnerable(a)
	case DealerAction:
		err = b.handleDealer(a)
	case DealAction:
		err = b.handleDeal(a)
	case AuctionAction:
		err = b.handleAuction(a)
	case PlayAction:
		err = b.handlePlay(a)
	default:
		err = malformed("unsupported action %T", a)
	}
	if err == nil {
		b.logAction(raw)
	}
	return b.record(raw, err)
}

// wrongPhase builds the precondition error for an action outside its phases.
func wrongPhase(name ActionName, p Phase) error {
	return fmt.Errorf("%w: %s not allowed in %s phase", engine.ErrPrecondition, name, p)
}

func (b *Bridge) handleVulnerable(a VulnerableAction) error {
	if !a.Value.Valid() {
		return malformed("vulnerability %d", a.Value)
	}
	b.vul = a.Value
	b.history.Vulnerabilities = append(b.history.Vulnerabilities, a.Value)
	b.fireEvent(GameEvent{Type: EventVulnerability, Seq: b.nextSeq(), Payload: map[string]interface{}{"value": a.Value.String()}})
	return nil
}

func (b *Bridge) handleDealer(a DealerAction) error {
	if b.phase != PhaseSetup {
		return wrongPhase(ActionDealer, b.phase)
	}
	if !a.Value.Valid() {
		return malformed("dealer seat %d", a.Value)
	}
	b.dealer = a.Value
	b.history.Dealers = append(b.history.Dealers, a.Value)
	b.fireEvent(GameEvent{Type: EventDealer, Seq: b.nextSeq(), Seat: a.Value.String()})
	return nil
}

func (b *Bridge) handleDeal(a DealAction) error {
	if b.phase != PhaseSetup {
		return wrongPhase(ActionDeal, b.phase)
	}
	// A later deal in Setup replaces the earlier one.
	hands, err := engine.NewHands(a.Cards)
	if err != nil {
		return err
	}
	b.hands = hands
	b.dealt = true
	b.history.Deals = append(b.history.Deals, hands)
	b.fireEvent(GameEvent{Type: EventDealt, Seq: b.nextSeq()})
	return nil
}

func (b *Bridge) handleAuction(a AuctionAction) error {
	if b.phase != PhaseSetup && b.phase != PhaseAuction {
		return wrongPhase(ActionAuction, b.phase)
	}
	if !b.dealer.Valid() {
		return fmt.Errorf("%w: no dealer set", engine.ErrPrecondition)
	}
	if !b.dealt {
		return fmt.Errorf("%w: cards not dealt", engine.ErrPrecondition)
	}

	auction := b.auction
	if auction == nil {
		auction = engine.NewAuction(b.dealer)
	}
	status, err := auction.ApplyCall(a.Player, a.Call)
	if err != nil {
		return err
	}

	// Committed from here on.
	b.auction = auction
	b.setPhase(PhaseAuction)
	b.fireEvent(GameEvent{Type: EventCall, Seq: b.nextSeq(), Seat: a.Player.String(), Payload: map[string]interface{}{"call": a.Call.String()}})
	if status == engine.AuctionFinished {
		b.finishAuction()
	}
	return nil
}

// finishAuction records contract and declarer and moves to Play, or to
// Finished on a pass-out.
func (b *Bridge) finishAuction() {
	contract, _ := b.auction.Contract()
	declarer, _ := b.auction.Declarer()

	b.contract = contract
	b.declarer = declarer
	b.history.Auctions = append(b.history.Auctions, b.auction.Calls())
	b.history.Contracts = append(b.history.Contracts, contract)
	b.history.Declarers = append(b.history.Declarers, declarer)

	b.log.WithFields(logrus.Fields{
		"contract": contract.String(),
		"declarer": declarer.String(),
	}).Info("auction finished")

	if contract.PassedOut() {
		b.history.Results = append(b.history.Results, 0)
		b.history.Scores = append(b.history.Scores, engine.FormatScore(0))
		b.setPhase(PhaseFinished)
		b.fireEvent(GameEvent{Type: EventAuctionEnd, Seq: b.nextSeq(), Payload: map[string]interface{}{"contract": contract.String()}})
		b.fireEvent(GameEvent{Type: EventDealScored, Seq: b.nextSeq(), Payload: map[string]interface{}{"score": engine.FormatScore(0)}})
		return
	}

	b.trick = engine.NewTrick(declarer.LeftOf(), contract.Denom)
	b.setPhase(PhasePlay)
	b.fireEvent(GameEvent{
		Type:    EventAuctionEnd,
		Seq:     b.nextSeq(),
		Seat:    declarer.String(),
		Payload: map[string]interface{}{"contract": contract.String()},
	})
}

func (b *Bridge) handlePlay(a PlayAction) error {
	if b.phase != PhasePlay {
		return wrongPhase(ActionPlay, b.phase)
	}
	if a.Skip {
		return nil
	}

	// Work on copies so a failure anywhere leaves b untouched.
	trick := *b.trick
	hands := b.hands
	complete, err := trick.AddCard(a.Player, a.Card, &hands)
	if err != nil {
		return err
	}

	var (
		rec   TrickRecord
		made  = b.made
		score *engine.ScoreCalculator
	)
	if complete {
		winner, err := trick.Winner()
		if err != nil {
			return err
		}
		rec = newTrickRecord(&trick, winner)
		if b.declarer.Side() == winner.Side() {
			made++
		}
		if len(b.history.Tricks)+1 == engine.TricksPerDeal {
			score, err = engine.NewScoreCalculator(b.contract, b.declarer, made, b.vul)
			if err != nil {
				return err
			}
		}
	}

	// Commit.
	b.hands = hands
	*b.trick = trick
	b.made = made
	b.fireEvent(GameEvent{Type: EventCardPlayed, Seq: b.nextSeq(), Seat: a.Player.String(), Payload: map[string]interface{}{"card": a.Card.String()}})
	if !complete {
		return nil
	}

	b.history.Tricks = append(b.history.Tricks, rec)
	b.log.WithFields(logrus.Fields{
		"trick":  len(b.history.Tricks),
		"winner": rec.Winner.String(),
		"made":   made,
	}).Debug("trick complete")
	b.fireEvent(GameEvent{Type: EventTrickEnd, Seq: b.nextSeq(), Seat: rec.Winner.String(), Payload: map[string]interface{}{"trick": len(b.history.Tricks)}})

	if score == nil {
		b.trick = engine.NewTrick(rec.Winner, b.contract.Denom)
		return nil
	}

	pbn := score.PBNScore()
	b.trick = nil
	b.history.Results = append(b.history.Results, made)
	b.history.Scores = append(b.history.Scores, pbn)
	b.setPhase(PhaseFinished)
	b.log.WithFields(logrus.Fields{
		"contract": b.contract.String(),
		"declarer": b.declarer.String(),
		"made":     made,
		"score":    pbn,
	}).Info("deal scored")
	b.fireEvent(GameEvent{Type: EventDealScored, Seq: b.nextSeq(), Payload: map[string]interface{}{"score": pbn, "made": made}})
	return nil
}

// nextSeq is the sequence number the action being applied will receive.
func (b *Bridge) nextSeq() int { return len(b.outcomes) + 1 }
