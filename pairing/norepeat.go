package pairing

import (
	"context"
	"fmt"

	"github.com/vmoreno/padel-showdown/models"
)

// NoRepeatGenerator walks the pairing order in bands of four and, within
// each band, picks one of the three possible splits into two matches,
// preferring the natural adjacent split and falling back to the two
// alternatives when it would repeat a previous encounter. A band whose
// every split contains a rematch fails the whole round.
type NoRepeatGenerator struct{}

func NewNoRepeatGenerator() Generator {
	return &NoRepeatGenerator{}
}

func (g *NoRepeatGenerator) Name() string {
	return "NoRepeat"
}

func (g *NoRepeatGenerator) GenerateRound(ctx context.Context, params Params) ([]*models.Match, error) {
	t := params.Tournament
	order := params.Order
	if len(order)%2 != 0 {
		return nil, fmt.Errorf("NoRepeatGenerator: pairing order must have even length, got %d", len(order))
	}

	matches := make([]*models.Match, 0, len(order)/2)

	i := 0
	for ; i+3 < len(order); i += 4 {
		a, b, c, d := order[i], order[i+1], order[i+2], order[i+3]

		// The three ways to split {a,b,c,d} into two matches, in order of
		// preference: the adjacent split first, then the cross splits.
		splits := [3][2][2]string{
			{{a, b}, {c, d}},
			{{a, c}, {b, d}},
			{{a, d}, {b, c}},
		}

		found := false
		for _, split := range splits {
			if t.HavePlayed(split[0][0], split[0][1]) || t.HavePlayed(split[1][0], split[1][1]) {
				continue
			}
			for _, pair := range split {
				matches = append(matches, &models.Match{
					Round: params.Round,
					SideA: pair[0],
					SideB: pair[1],
				})
			}
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: competitors %s, %s, %s, %s have exhausted fresh opponents", ErrNoValidPairing, a, b, c, d)
		}
	}

	// A trailing pair has exactly one possible match.
	if i < len(order) {
		a, b := order[i], order[i+1]
		if t.HavePlayed(a, b) {
			return nil, fmt.Errorf("%w: %s and %s already met", ErrNoValidPairing, a, b)
		}
		matches = append(matches, &models.Match{Round: params.Round, SideA: a, SideB: b})
	}

	if err := assignCourts(t, matches); err != nil {
		return nil, err
	}
	return matches, nil
}
