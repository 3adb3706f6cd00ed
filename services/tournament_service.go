package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmoreno/padel-showdown/live"
	"github.com/vmoreno/padel-showdown/models"
	"github.com/vmoreno/padel-showdown/pairing"
	"github.com/vmoreno/padel-showdown/repositories"
	"github.com/vmoreno/padel-showdown/standings"
)

// Broadcaster pushes events to live subscribers of a tournament room. The
// websocket hub implements it; tests pass nil.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type CreateTournamentInput struct {
	Name        string             `json:"name"`
	Mode        models.PairingMode `json:"mode"`
	CourtPolicy models.CourtPolicy `json:"court_policy"`
	Courts      []string           `json:"courts"`
	AllowByes   bool               `json:"allow_byes"`
}

// TournamentView is the aggregate a UI renders in one request: the
// tournament, its ranked leaderboard and the matches grouped per round.
type TournamentView struct {
	Tournament  *models.Tournament `json:"tournament"`
	Leaderboard []standings.Row    `json:"leaderboard"`
	Rounds      [][]*models.Match  `json:"rounds"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	Get(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, id string) error

	RegisterCompetitor(ctx context.Context, id, name string, members *[2]string) (*models.Competitor, error)
	GenerateRound(ctx context.Context, id string) ([]*models.Match, error)
	RecordResult(ctx context.Context, id string, matchID, scoreA, scoreB int) (*models.Match, error)
	Finalize(ctx context.Context, id string) error
	ResetMatches(ctx context.Context, id string) error

	Leaderboard(ctx context.Context, id string) ([]standings.Row, error)
	MatchesForRound(ctx context.Context, id string, round int) ([]*models.Match, error)
	TotalPossibleRounds(ctx context.Context, id string) (int, error)
	FullView(ctx context.Context, id string) (*TournamentView, error)
}

type tournamentService struct {
	store repositories.TournamentStore
	hub   Broadcaster

	// rng drives the round-1 shuffle. Guarded separately because rounds of
	// distinct tournaments may be generated concurrently.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewTournamentService wires the store and the optional live hub. A nil rng
// gets a time-seeded one; tests inject a fixed seed for deterministic
// round-1 pairings.
func NewTournamentService(store repositories.TournamentStore, hub Broadcaster, rng *rand.Rand) TournamentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &tournamentService{
		store: store,
		hub:   hub,
		rng:   rng,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name", ErrNameRequired)
	}

	mode := input.Mode
	if mode == "" {
		mode = models.ModeAdjacent
	}
	if mode != models.ModeAdjacent && mode != models.ModeNoRepeat {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPairingMode, input.Mode)
	}

	policy := input.CourtPolicy
	if policy == "" {
		policy = models.CourtCycle
	}
	if policy != models.CourtCycle && policy != models.CourtStrict {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCourtPolicy, input.CourtPolicy)
	}

	courts := make([]string, 0, len(input.Courts))
	for _, c := range input.Courts {
		if c = strings.TrimSpace(c); c != "" {
			courts = append(courts, c)
		}
	}

	t := models.NewTournament(uuid.NewString(), name, mode, policy, courts, input.AllowByes)
	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store tournament: %w", err)
	}
	return t.Clone(), nil
}

func (s *tournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.store.List(ctx)
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *tournamentService) RegisterCompetitor(ctx context.Context, id, name string, members *[2]string) (*models.Competitor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: competitor name", ErrNameRequired)
	}
	if members != nil {
		m1 := strings.TrimSpace(members[0])
		m2 := strings.TrimSpace(members[1])
		if m1 == "" || m2 == "" {
			return nil, fmt.Errorf("%w: both pair members", ErrNameRequired)
		}
		members = &[2]string{m1, m2}
	}

	var registered *models.Competitor
	err := s.store.Update(ctx, id, func(t *models.Tournament) error {
		if t.Finalized {
			return ErrTournamentFinalized
		}
		if _, exists := t.Competitors[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateCompetitor, name)
		}
		c := &models.Competitor{Name: name, Members: members}
		t.Competitors[name] = c
		t.Order = append(t.Order, name)
		registered = &models.Competitor{Name: c.Name, Members: c.Members}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return registered, nil
}

func (s *tournamentService) GenerateRound(ctx context.Context, id string) ([]*models.Match, error) {
	var created []*models.Match

	err := s.store.Update(ctx, id, func(t *models.Tournament) error {
		if t.Finalized {
			return ErrTournamentFinalized
		}

		n := len(t.Competitors)
		minimum := 2
		if t.Mode == models.ModeNoRepeat {
			minimum = 4
		}
		if n < minimum {
			return fmt.Errorf("%w: have %d, need at least %d", ErrInvalidCompetitorCount, n, minimum)
		}
		if maxRounds := t.TotalPossibleRounds(); t.CurrentRound >= maxRounds {
			return fmt.Errorf("%w: cap is %d round(s) for %d competitors", ErrRoundCapExceeded, maxRounds, n)
		}
		if n%2 != 0 && !t.AllowByes {
			return fmt.Errorf("%w: %d competitors is odd and byes are disabled", ErrInvalidCompetitorCount, n)
		}

		round := t.CurrentRound + 1

		// Round 1 is a uniformly random permutation; every later round
		// follows the current ranking.
		var order []string
		if round == 1 {
			order = t.CompetitorNames()
			s.shuffle(order)
		} else {
			order = standings.RankedNames(t.Competitors, t.Matches)
		}

		// Odd count with byes allowed: the last competitor in pairing
		// order sits out, recorded as a bye with no stat impact.
		var byeName string
		if len(order)%2 != 0 {
			byeName = order[len(order)-1]
			order = order[:len(order)-1]
		}

		generator := pairing.ForMode(t.Mode)
		matches, err := generator.GenerateRound(ctx, pairing.Params{
			Tournament: t,
			Order:      order,
			Round:      round,
		})
		if err != nil {
			return err
		}
		if byeName != "" {
			matches = append(matches, &models.Match{Round: round, SideA: byeName, Bye: true})
		}

		for _, m := range matches {
			m.ID = t.NextMatchID
			t.NextMatchID++
		}
		t.Matches = append(t.Matches, matches...)
		t.CurrentRound = round

		created = cloneMatches(matches)
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.notify(id, live.EventRoundGenerated, created)
	return created, nil
}

func (s *tournamentService) RecordResult(ctx context.Context, id string, matchID, scoreA, scoreB int) (*models.Match, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, fmt.Errorf("%w: got %d and %d", ErrInvalidScore, scoreA, scoreB)
	}

	var (
		updated *models.Match
		board   []standings.Row
	)
	err := s.store.Update(ctx, id, func(t *models.Tournament) error {
		if t.Finalized {
			return ErrTournamentFinalized
		}
		m := t.MatchByID(matchID)
		if m == nil || m.Bye {
			return fmt.Errorf("%w: id %d", ErrMatchNotFound, matchID)
		}

		sa, sb := scoreA, scoreB
		m.ScoreA, m.ScoreB = &sa, &sb
		m.Played = true

		// Full recomputation from the whole log, so edits to earlier
		// rounds replace their previous contribution instead of stacking.
		board = standings.Compute(t.Competitors, t.Matches)

		clone := *m
		clone.ScoreA, clone.ScoreB = &sa, &sb
		updated = &clone
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.notify(id, live.EventLeaderboardUpdated, board)
	return updated, nil
}

func (s *tournamentService) Finalize(ctx context.Context, id string) error {
	err := s.store.Update(ctx, id, func(t *models.Tournament) error {
		if t.Finalized {
			return ErrTournamentFinalized
		}
		t.Finalized = true
		return nil
	})
	return mapStoreError(err)
}

// ResetMatches is the administrative escape hatch: it clears the match log,
// round counter and all derived stats while keeping registrations, and
// reopens a finalized tournament. Deliberately allowed in every state.
func (s *tournamentService) ResetMatches(ctx context.Context, id string) error {
	err := s.store.Update(ctx, id, func(t *models.Tournament) error {
		for _, c := range t.Competitors {
			c.ResetStats()
		}
		t.Matches = nil
		t.CurrentRound = 0
		t.NextMatchID = 1
		t.Finalized = false
		return nil
	})
	return mapStoreError(err)
}

func (s *tournamentService) Leaderboard(ctx context.Context, id string) ([]standings.Row, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return standings.Compute(t.Competitors, t.Matches), nil
}

func (s *tournamentService) MatchesForRound(ctx context.Context, id string, round int) ([]*models.Match, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if round < 1 || round > t.CurrentRound {
		return nil, fmt.Errorf("%w: round %d of %d", ErrRoundOutOfRange, round, t.CurrentRound)
	}
	return t.MatchesForRound(round), nil
}

func (s *tournamentService) TotalPossibleRounds(ctx context.Context, id string) (int, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return t.TotalPossibleRounds(), nil
}

// FullView assembles everything a tournament page needs in one call. The
// leaderboard and the per-round grouping are built concurrently over a
// detached clone.
func (s *tournamentService) FullView(ctx context.Context, id string) (*TournamentView, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	view := &TournamentView{Tournament: t}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		view.Leaderboard = standings.Compute(t.Competitors, t.Matches)
		return nil
	})
	g.Go(func() error {
		rounds := make([][]*models.Match, t.CurrentRound)
		for r := 1; r <= t.CurrentRound; r++ {
			rounds[r-1] = t.MatchesForRound(r)
		}
		view.Rounds = rounds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *tournamentService) shuffle(names []string) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}

func (s *tournamentService) notify(tournamentID, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := live.RoomID(tournamentID)
	s.hub.BroadcastToRoom(room, live.Message{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
}

// mapStoreError translates store-level errors into the service taxonomy.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrConflict):
		return ErrTournamentConflict
	default:
		return err
	}
}

func cloneMatches(matches []*models.Match) []*models.Match {
	out := make([]*models.Match, len(matches))
	for i, m := range matches {
		clone := *m
		out[i] = &clone
	}
	return out
}
