package engine

import (
	"errors"
	"testing"
)

// contract builds a Contract from its string form (test helper).
func contract(tok string) Contract {
	if tok == "Pass" {
		return Contract{}
	}
	c := Contract{}
	switch {
	case len(tok) > 2 && tok[len(tok)-2:] == "XX":
		c.Risk = RiskRedoubled
		tok = tok[:len(tok)-2]
	case tok[len(tok)-1] == 'X':
		c.Risk = RiskDoubled
		tok = tok[:len(tok)-1]
	}
	bid := mcall(tok)
	c.Level, c.Denom = bid.Level, bid.Denom
	return c
}

func pbn(t *testing.T, con string, decl Seat, made int, vul Vulnerability) string {
	t.Helper()
	sc, err := NewScoreCalculator(contract(con), decl, made, vul)
	if err != nil {
		t.Fatalf("NewScoreCalculator(%s, %s, %d, %s): %v", con, decl, made, vul, err)
	}
	return sc.PBNScore()
}

// TestScoreScenarios covers the reference deals. The 4S and 3NT results
// follow the scoring table: 120+300 and 100+500.
func TestScoreScenarios(t *testing.T) {
	cases := []struct {
		con  string
		decl Seat
		made int
		vul  Vulnerability
		want string
	}{
		{"4S", North, 10, VulNone, "NS 420"},
		{"3NT", East, 9, VulAll, "NS -600"},
		{"4HX", South, 8, VulNS, "NS -500"},
		{"Pass", NoSeat, 0, VulNone, "NS 0"},
	}
	for _, tc := range cases {
		if got := pbn(t, tc.con, tc.decl, tc.made, tc.vul); got != tc.want {
			t.Errorf("%s by %s making %d (%s): %s, want %s", tc.con, tc.decl, tc.made, tc.vul, got, tc.want)
		}
	}
}

// TestScoreMade covers part-scores, games, slams, doubled makes and overtricks.
func TestScoreMade(t *testing.T) {
	cases := []struct {
		con  string
		decl Seat
		made int
		vul  Vulnerability
		want int // NS relative
	}{
		{"1C", North, 7, VulNone, 70},
		{"2D", South, 9, VulNone, 110},
		{"2H", North, 8, VulNone, 110},
		{"1NT", North, 7, VulNone, 90},
		{"1NT", North, 9, VulNone, 150},
		{"2NT", East, 8, VulNone, -120},
		{"3NT", North, 9, VulNone, 400},
		{"3NT", North, 10, VulNS, 630},
		{"4H", West, 10, VulEW, -620},
		{"4S", North, 10, VulNS, 620},
		{"5C", South, 11, VulNone, 400},
		{"5D", South, 11, VulAll, 600},
		{"6S", North, 12, VulNone, 980},
		{"6S", North, 12, VulNS, 1430},
		{"6NT", East, 12, VulNone, -990},
		{"7NT", North, 13, VulNone, 1520},
		{"7NT", North, 13, VulAll, 2220},
		{"7C", North, 13, VulNS, 2140},
		// Doubled: 2x trick value, 100 insult.
		{"1CX", North, 7, VulNone, 190},
		{"2HX", North, 8, VulNone, 520},
		{"2HX", North, 9, VulNone, 620},
		{"2HX", North, 9, VulNS, 920},
		{"1NTX", North, 7, VulNone, 230},
		{"4SX", East, 10, VulEW, -840},
		// Redoubled: 4x trick value, 200 insult.
		{"1CXX", North, 7, VulNone, 330},
		{"1CXX", North, 8, VulNone, 530},
		{"2SXX", South, 8, VulNS, 940},
		{"1NTXX", North, 8, VulAll, 1260},
	}
	for _, tc := range cases {
		sc, err := NewScoreCalculator(contract(tc.con), tc.decl, tc.made, tc.vul)
		if err != nil {
			t.Fatal(err)
		}
		if got := sc.NSScore(); got != tc.want {
			t.Errorf("%s by %s making %d (%s): %d, want %d", tc.con, tc.decl, tc.made, tc.vul, got, tc.want)
		}
	}
}

// TestScoreDown covers undoubled and stepped doubled penalties.
func TestScoreDown(t *testing.T) {
	cases := []struct {
		con  string
		decl Seat
		made int
		vul  Vulnerability
		want int
	}{
		{"4S", North, 9, VulNone, -50},
		{"4S", North, 7, VulNS, -300},
		{"3NT", East, 6, VulNone, 150},
		{"3NT", East, 6, VulEW, 300},
		{"4HX", South, 9, VulNone, -100},
		{"4HX", South, 8, VulNone, -300},
		{"4HX", South, 7, VulNone, -500},
		{"4HX", South, 6, VulNone, -700},
		{"4HX", South, 5, VulNone, -900},
		{"4HX", South, 9, VulNS, -200},
		{"4HX", South, 7, VulNS, -800},
		{"4HX", South, 6, VulAll, -1100},
		{"4HXX", South, 8, VulNone, -600},
		{"4HXX", South, 8, VulNS, -1000},
		{"7NTX", West, 0, VulEW, 3800},
	}
	for _, tc := range cases {
		sc, err := NewScoreCalculator(contract(tc.con), tc.decl, tc.made, tc.vul)
		if err != nil {
			t.Fatal(err)
		}
		if got := sc.NSScore(); got != tc.want {
			t.Errorf("%s by %s making %d (%s): %d, want %d", tc.con, tc.decl, tc.made, tc.vul, got, tc.want)
		}
	}
}

// TestScoreSides checks Score reports the scoring side and unsigned points.
func TestScoreSides(t *testing.T) {
	sc, _ := NewScoreCalculator(contract("3NT"), East, 9, VulAll)
	if side, ok := sc.DeclarerSide(); !ok || side != SideEW {
		t.Errorf("DeclarerSide = %v, %v", side, ok)
	}
	if !sc.IsVulnerable() {
		t.Error("EW should be vulnerable")
	}
	side, pts, ok := sc.Score()
	if !ok || side != SideEW || pts != 600 {
		t.Errorf("Score = %v %d %v", side, pts, ok)
	}

	sc, _ = NewScoreCalculator(contract("3NT"), East, 8, VulNS)
	if sc.IsVulnerable() {
		t.Error("EW not vulnerable under NS vulnerability")
	}
	side, pts, _ = sc.Score()
	if side != SideNS || pts != 50 {
		t.Errorf("Score = %v %d", side, pts)
	}

	sc, _ = NewScoreCalculator(Contract{}, NoSeat, 0, VulAll)
	if _, ok := sc.DeclarerSide(); ok {
		t.Error("passed-out deal has no declarer side")
	}
	if _, _, ok := sc.Score(); ok {
		t.Error("passed-out deal has no scoring side")
	}
}

// TestScoreValidation rejects out-of-range inputs.
func TestScoreValidation(t *testing.T) {
	cases := []struct {
		name string
		c    Contract
		decl Seat
		made int
		vul  Vulnerability
	}{
		{"made negative", contract("4S"), North, -1, VulNone},
		{"made over 13", contract("4S"), North, 14, VulNone},
		{"level 8", Contract{Level: 8, Denom: Spades}, North, 10, VulNone},
		{"bad denomination", Contract{Level: 1, Denom: Denomination(5)}, North, 7, VulNone},
		{"bad risk", Contract{Level: 1, Risk: Risk(3)}, North, 7, VulNone},
		{"bad vulnerability", contract("4S"), North, 10, Vulnerability(4)},
		{"no declarer", contract("4S"), NoSeat, 10, VulNone},
		{"bad declarer", contract("4S"), Seat(9), 10, VulNone},
		{"declarer on pass-out", Contract{}, North, 0, VulNone},
	}
	for _, tc := range cases {
		if _, err := NewScoreCalculator(tc.c, tc.decl, tc.made, tc.vul); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

// TestScoreDeterministic checks repeated calculators agree.
func TestScoreDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := pbn(t, "6NTX", West, 11, VulEW); got != "NS 200" {
			t.Fatalf("run %d: %s", i, got)
		}
	}
	if FormatScore(-100) != "NS -100" {
		t.Errorf("FormatScore(-100) = %q", FormatScore(-100))
	}
}
