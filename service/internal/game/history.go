// internal/game/history.go
package game

import (
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/bridge/engine"
	"github.com/sirupsen/logrus"
)

// ActionRecord is one accepted action in application order.
type ActionRecord struct {
	GameID      uuid.UUID `json:"gameId"`
	ActionIndex int       `json:"actionIndex"`
	Action      RawAction `json:"action"`
	Timestamp   int64     `json:"timestamp"` // Unix milliseconds.
}

// PlayRecord is one card of a completed trick.
type PlayRecord struct {
	Seat engine.Seat `json:"seat"`
	Card engine.Card `json:"card"`
}

// TrickRecord is a completed trick.
type TrickRecord struct {
	Leader engine.Seat  `json:"leader"`
	Plays  []PlayRecord `json:"plays"`
	Winner engine.Seat  `json:"winner"`
}

func newTrickRecord(t *engine.Trick, winner engine.Seat) TrickRecord {
	plays := t.Plays()
	rec := TrickRecord{
		Leader: t.Leader(),
		Plays:  make([]PlayRecord, len(plays)),
		Winner: winner,
	}
	for i, p := range plays {
		rec.Plays[i] = PlayRecord{Seat: p.Seat, Card: p.Card}
	}
	return rec
}

// GameHistory accumulates per-deal records. Entries are only ever appended.
type GameHistory struct {
	GameID          uuid.UUID               `json:"gameId"`
	Dealers         []engine.Seat           `json:"dealers"`
	Vulnerabilities []engine.Vulnerability  `json:"vulnerabilities"`
	Deals           []engine.Hands          `json:"-"`
	Auctions        [][]engine.AuctionEntry `json:"-"`
	Contracts       []engine.Contract       `json:"contracts"`
	Declarers       []engine.Seat           `json:"declarers"`
	Tricks          []TrickRecord           `json:"tricks"`
	Results         []int                   `json:"results"`
	Scores          []string                `json:"scores"`
	Actions         []ActionRecord          `json:"actions"`
}

// clone returns a copy that shares no slices with h.
func (h GameHistory) clone() GameHistory {
	out := h
	out.Dealers = append([]engine.Seat(nil), h.Dealers...)
	out.Vulnerabilities = append([]engine.Vulnerability(nil), h.Vulnerabilities...)
	out.Deals = append([]engine.Hands(nil), h.Deals...)
	out.Auctions = make([][]engine.AuctionEntry, len(h.Auctions))
	for i, a := range h.Auctions {
		out.Auctions[i] = append([]engine.AuctionEntry(nil), a...)
	}
	out.Contracts = append([]engine.Contract(nil), h.Contracts...)
	out.Declarers = append([]engine.Seat(nil), h.Declarers...)
	out.Tricks = make([]TrickRecord, len(h.Tricks))
	for i, t := range h.Tricks {
		t.Plays = append([]PlayRecord(nil), t.Plays...)
		out.Tricks[i] = t
	}
	out.Results = append([]int(nil), h.Results...)
	out.Scores = append([]string(nil), h.Scores...)
	out.Actions = append([]ActionRecord(nil), h.Actions...)
	return out
}

// logAction appends an accepted action to the history.
// Assumes lock is held by caller.
func (b *Bridge) logAction(raw RawAction) {
	rec := ActionRecord{
		GameID:      b.ID,
		ActionIndex: len(b.history.Actions) + 1,
		Action:      raw,
		Timestamp:   time.Now().UnixMilli(),
	}
	b.history.Actions = append(b.history.Actions, rec)
	b.log.WithFields(logrus.Fields{
		"seq":          b.nextSeq(),
		"action":       raw.Name,
		"action_index": rec.ActionIndex,
	}).Debug("action applied")
}
