// Package pairing turns an ordered list of competitors into the matches of
// one round. Generators are pure: preconditions, ordering (random shuffle
// for round 1, ranking afterwards) and bye selection are the caller's job.
package pairing

import (
	"context"
	"errors"

	"github.com/vmoreno/padel-showdown/models"
)

var (
	// ErrNoValidPairing is returned by the no-repeat generator when every
	// possible split of some rank band is a rematch.
	ErrNoValidPairing = errors.New("no rematch-free pairing exists for this round")

	// ErrInsufficientCourts is returned under the strict court policy when
	// the round needs more courts than are configured.
	ErrInsufficientCourts = errors.New("not enough courts configured for this round")
)

// Params carries everything a generator needs for one round. Order holds
// the competitors in pairing order and must have even length.
type Params struct {
	Tournament *models.Tournament
	Order      []string
	Round      int
}

type Generator interface {
	GenerateRound(ctx context.Context, params Params) ([]*models.Match, error)

	Name() string
}

// ForMode returns the generator for the tournament's pairing mode.
func ForMode(mode models.PairingMode) Generator {
	if mode == models.ModeNoRepeat {
		return NewNoRepeatGenerator()
	}
	return NewAdjacentGenerator()
}

// assignCourts labels matches with courts in generation order. Under the
// cycle policy courts are reused (match i gets courts[i mod n]); under the
// strict policy a round needing more courts than configured is refused.
// With no courts configured matches stay unassigned under either policy.
func assignCourts(t *models.Tournament, matches []*models.Match) error {
	if len(t.Courts) == 0 {
		return nil
	}
	if t.CourtPolicy == models.CourtStrict && len(matches) > len(t.Courts) {
		return ErrInsufficientCourts
	}
	for i, m := range matches {
		court := t.Courts[i%len(t.Courts)]
		m.Court = &court
	}
	return nil
}
