package pairing

import (
	"context"
	"fmt"

	"github.com/vmoreno/padel-showdown/models"
)

// AdjacentGenerator pairs neighbours in the given order: (1st,2nd),
// (3rd,4th) and so on. Fed the ranked order this is the fold pairing of the
// americano format: the top of the table keeps meeting itself, rematches
// included.
type AdjacentGenerator struct{}

func NewAdjacentGenerator() Generator {
	return &AdjacentGenerator{}
}

func (g *AdjacentGenerator) Name() string {
	return "Adjacent"
}

func (g *AdjacentGenerator) GenerateRound(ctx context.Context, params Params) ([]*models.Match, error) {
	order := params.Order
	if len(order)%2 != 0 {
		return nil, fmt.Errorf("AdjacentGenerator: pairing order must have even length, got %d", len(order))
	}

	matches := make([]*models.Match, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		matches = append(matches, &models.Match{
			Round: params.Round,
			SideA: order[i],
			SideB: order[i+1],
		})
	}

	if err := assignCourts(params.Tournament, matches); err != nil {
		return nil, err
	}
	return matches, nil
}
