// Package standings derives the leaderboard from the match log. The
// computation is always a full pass over every played match, never an
// incremental update, so edited results can never leave stale totals
// behind.
package standings

import (
	"sort"

	"github.com/vmoreno/padel-showdown/models"
)

// Row is one leaderboard entry.
type Row struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	Diff        int    `json:"diff"`
	Played      int    `json:"played"`
}

// Compute rebuilds every competitor's stats from the played matches and
// returns the ranked leaderboard. The competitor structs are mutated in
// place so the tournament state stays consistent with the returned rows.
//
// Ranking: points desc, then differential desc, then wins desc, then name
// asc. Before any result is recorded every key is zero, which degenerates
// into plain name order.
func Compute(competitors map[string]*models.Competitor, matches []*models.Match) []Row {
	for _, c := range competitors {
		c.ResetStats()
	}

	for _, m := range matches {
		if !m.Played || m.Bye {
			continue
		}
		a, okA := competitors[m.SideA]
		b, okB := competitors[m.SideB]
		if !okA || !okB {
			continue
		}
		sa, sb := *m.ScoreA, *m.ScoreB

		a.Played++
		b.Played++
		a.Diff += sa - sb
		b.Diff += sb - sa

		switch {
		case sa > sb:
			a.Wins++
			a.Points += models.PointsWin
			b.Losses++
		case sb > sa:
			b.Wins++
			b.Points += models.PointsWin
			a.Losses++
		default:
			a.Draws++
			b.Draws++
			a.Points += models.PointsDraw
			b.Points += models.PointsDraw
		}
	}

	rows := make([]Row, 0, len(competitors))
	for _, c := range competitors {
		rows = append(rows, Row{
			Name:        c.Name,
			DisplayName: c.DisplayName(),
			Points:      c.Points,
			Wins:        c.Wins,
			Draws:       c.Draws,
			Losses:      c.Losses,
			Diff:        c.Diff,
			Played:      c.Played,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Diff != rows[j].Diff {
			return rows[i].Diff > rows[j].Diff
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}

// RankedNames returns just the competitor names of the computed leaderboard,
// in rank order. This is the input the pairing engine consumes.
func RankedNames(competitors map[string]*models.Competitor, matches []*models.Match) []string {
	rows := Compute(competitors, matches)
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return names
}
