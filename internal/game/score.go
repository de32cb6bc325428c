package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// ScoreEntry is one player's line in the final ranking.
type ScoreEntry struct {
	Seat   int
	Name   string
	Score  int
	Turns  int
	Cards  int
	Rank   int
	Winner bool
}

// ScoreTable is the final ranking, best first.
type ScoreTable []ScoreEntry

// ScoreTable scores every player once and ranks them by (score, -turns).
// Players with equal keys share a rank; every player equal to the top key
// is a winner.
func (g *Game) ScoreTable() ScoreTable {
	if g.table != nil {
		return g.table
	}
	table := make(ScoreTable, 0, len(g.Players))
	for _, p := range g.Players {
		score, negTurns := p.CountScores()
		table = append(table, ScoreEntry{
			Seat:  p.Seat,
			Name:  p.Name,
			Score: score,
			Turns: -negTurns,
			Cards: p.Count(),
		})
		g.log(log.NewScoreEvent(g.turn, p.Index(), score, p.TurnsTaken))
	}
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Turns != b.Turns {
			return a.Turns < b.Turns
		}
		return a.Seat < b.Seat
	})
	for i := range table {
		e := &table[i]
		if i > 0 && table[i-1].sameKey(*e) {
			e.Rank = table[i-1].Rank
		} else {
			e.Rank = i + 1
		}
		e.Winner = e.sameKey(table[0])
	}
	g.table = table
	return table
}

func (e ScoreEntry) sameKey(o ScoreEntry) bool {
	return e.Score == o.Score && e.Turns == o.Turns
}

// Winners returns the entries marked as winners.
func (t ScoreTable) Winners() []ScoreEntry {
	var out []ScoreEntry
	for _, e := range t {
		if e.Winner {
			out = append(out, e)
		}
	}
	return out
}

// WinnerNames returns the names of the winners.
func (t ScoreTable) WinnerNames() []string {
	var out []string
	for _, e := range t.Winners() {
		out = append(out, e.Name)
	}
	return out
}

// BySeat returns the entry of the player at seat.
func (t ScoreTable) BySeat(seat int) (ScoreEntry, bool) {
	for _, e := range t {
		if e.Seat == seat {
			return e, true
		}
	}
	return ScoreEntry{}, false
}

func (t ScoreTable) String() string {
	var sb strings.Builder
	for _, e := range t {
		mark := ""
		if e.Winner {
			mark = " *winner*"
		}
		fmt.Fprintf(&sb, "%d. %-24s %3d VP  %3d turns  %3d cards%s\n", e.Rank, e.Name, e.Score, e.Turns, e.Cards, mark)
	}
	return sb.String()
}
