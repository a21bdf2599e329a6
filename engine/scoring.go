package engine

import (
	"fmt"
	"strconv"
)

// trickValue is the per-trick score for suit strains (index = Denomination).
// No trump is handled separately: 40 for the first trick, 30 after.
var trickValue = [NumDenominations]int{20, 20, 30, 30, 30}

// ScoreCalculator computes the duplicate score of one deal.
type ScoreCalculator struct {
	contract Contract
	declarer Seat
	made     int
	vul      Vulnerability
}

// NewScoreCalculator validates its inputs. declarer must be NoSeat exactly
// when the contract is passed out.
func NewScoreCalculator(contract Contract, declarer Seat, made int, vul Vulnerability) (*ScoreCalculator, error) {
	if made < 0 || made > TricksPerDeal {
		return nil, fmt.Errorf("%w: tricks made %d outside 0..%d", ErrValidation, made, TricksPerDeal)
	}
	if contract.Level > 7 {
		return nil, fmt.Errorf("%w: contract level %d outside 0..7", ErrValidation, contract.Level)
	}
	if !contract.Denom.Valid() {
		return nil, fmt.Errorf("%w: denomination %d", ErrValidation, contract.Denom)
	}
	if !contract.Risk.Valid() {
		return nil, fmt.Errorf("%w: risk %d", ErrValidation, contract.Risk)
	}
	if !vul.Valid() {
		return nil, fmt.Errorf("%w: vulnerability %d", ErrValidation, vul)
	}
	switch {
	case contract.PassedOut() && declarer != NoSeat:
		return nil, fmt.Errorf("%w: passed-out deal has declarer %s", ErrValidation, declarer)
	case !contract.PassedOut() && !declarer.Valid():
		return nil, fmt.Errorf("%w: contract %s needs a declarer", ErrValidation, contract)
	}
	return &ScoreCalculator{contract: contract, declarer: declarer, made: made, vul: vul}, nil
}

// DeclarerSide returns the declaring partnership; ok is false on a pass-out.
func (sc *ScoreCalculator) DeclarerSide() (side Side, ok bool) {
	if !sc.declarer.Valid() {
		return 0, false
	}
	return sc.declarer.Side(), true
}

// IsVulnerable reports whether the declaring side is vulnerable.
func (sc *ScoreCalculator) IsVulnerable() bool {
	side, ok := sc.DeclarerSide()
	return ok && sc.vul.Covers(side)
}

// Score returns the side that scores and the (non-negative) points it
// receives. ok is false when the deal was passed out.
func (sc *ScoreCalculator) Score() (winner Side, points int, ok bool) {
	side, ok := sc.DeclarerSide()
	if !ok || sc.contract.PassedOut() {
		return 0, 0, false
	}
	overUnder := sc.made - sc.contract.TricksNeeded()
	if overUnder >= 0 {
		return side, sc.madeScore(overUnder), true
	}
	return side.Opponent(), sc.penalty(-overUnder), true
}

// madeScore scores a contract that made with overtricks extra tricks.
func (sc *ScoreCalculator) madeScore(overtricks int) int {
	var (
		c    = sc.contract
		vul  = sc.IsVulnerable()
		mult = c.Risk.Multiplier()
	)

	tricks := trickValue[c.Denom] * int(c.Level)
	if c.Denom == NoTrump {
		tricks = 40 + 30*int(c.Level-1)
	}
	tricks *= mult

	total := tricks
	if mult > 1 {
		total += 50 * mult
	}

	switch {
	case tricks >= 100 && vul:
		total += 500
	case tricks >= 100:
		total += 300
	default:
		total += 50
	}

	switch {
	case c.Level == 6 && vul:
		total += 750
	case c.Level == 6:
		total += 500
	case c.Level == 7 && vul:
		total += 1500
	case c.Level == 7:
		total += 1000
	}

	if c.Risk == RiskNone {
		total += overtricks * trickValue[c.Denom]
	} else {
		per := 100
		if vul {
			per = 200
		}
		if c.Risk == RiskRedoubled {
			per *= 2
		}
		total += overtricks * per
	}
	return total
}

// penalty scores a contract that went down tricks.
func (sc *ScoreCalculator) penalty(down int) int {
	vul := sc.IsVulnerable()
	if sc.contract.Risk == RiskNone {
		if vul {
			return 100 * down
		}
		return 50 * down
	}

	steps := [3]int{100, 200, 200}
	if vul {
		steps = [3]int{200, 300, 300}
	}
	total := 0
	for i := 0; i < down; i++ {
		total += steps[min(i, len(steps)-1)]
	}
	if sc.contract.Risk == RiskRedoubled {
		total *= 2
	}
	return total
}

// NSScore returns the score from North-South's point of view.
func (sc *ScoreCalculator) NSScore() int {
	side, pts, ok := sc.Score()
	if !ok {
		return 0
	}
	if side == SideEW {
		return -pts
	}
	return pts
}

// PBNScore formats the score as recorded in PBN files, e.g. "NS 620".
func (sc *ScoreCalculator) PBNScore() string {
	return FormatScore(sc.NSScore())
}

// FormatScore renders a North-South relative score.
func FormatScore(ns int) string {
	return "NS " + strconv.Itoa(ns)
}
