package models

// PairingMode selects how rounds after the first are formed.
type PairingMode string

const (
	// ModeAdjacent pairs rank 1 vs 2, 3 vs 4 and so on. Rematches between
	// competitors stuck in the same rank band are possible.
	ModeAdjacent PairingMode = "adjacent"
	// ModeNoRepeat additionally searches each rank band of four for a split
	// that avoids rematches, failing the round when none exists.
	ModeNoRepeat PairingMode = "no_repeat"
)

// CourtPolicy selects how courts are assigned when a round produces more
// matches than there are courts configured.
type CourtPolicy string

const (
	// CourtCycle reuses courts in order: match i gets courts[i mod n].
	CourtCycle CourtPolicy = "cycle"
	// CourtStrict refuses to generate a round that needs more courts than
	// are configured.
	CourtStrict CourtPolicy = "strict"
)

// Tournament aggregates the full state of one americano tournament. All
// state is in-memory; the store serializes access per instance, so methods
// here assume they run under the instance's lock.
type Tournament struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Mode        PairingMode `json:"mode"`
	CourtPolicy CourtPolicy `json:"court_policy"`

	// Competitors is keyed by competitor name; Order preserves registration
	// order for stable display of untied competitors.
	Competitors map[string]*Competitor `json:"competitors"`
	Order       []string               `json:"order"`

	// Matches is append-only; generation order is preserved.
	Matches []*Match `json:"matches"`

	Courts       []string `json:"courts,omitempty"`
	CurrentRound int      `json:"current_round"`
	AllowByes    bool     `json:"allow_byes"`
	Finalized    bool     `json:"finalized"`

	NextMatchID int `json:"next_match_id"`
}

func NewTournament(id, name string, mode PairingMode, policy CourtPolicy, courts []string, allowByes bool) *Tournament {
	return &Tournament{
		ID:          id,
		Name:        name,
		Mode:        mode,
		CourtPolicy: policy,
		Competitors: make(map[string]*Competitor),
		Courts:      courts,
		AllowByes:   allowByes,
		NextMatchID: 1,
	}
}

// CompetitorNames returns competitor names in registration order.
func (t *Tournament) CompetitorNames() []string {
	names := make([]string, len(t.Order))
	copy(names, t.Order)
	return names
}

// MatchByID finds a match in the log. Returns nil when absent.
func (t *Tournament) MatchByID(id int) *Match {
	for _, m := range t.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// MatchesForRound returns the matches generated for the given round, in
// generation order.
func (t *Tournament) MatchesForRound(round int) []*Match {
	var out []*Match
	for _, m := range t.Matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// HavePlayed reports whether the two competitors already faced each other
// in any generated match, played or not.
func (t *Tournament) HavePlayed(a, b string) bool {
	for _, m := range t.Matches {
		if m.Bye {
			continue
		}
		if (m.SideA == a && m.SideB == b) || (m.SideA == b && m.SideB == a) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so callers can hand out read-only views
// without exposing the live instance the store guards.
func (t *Tournament) Clone() *Tournament {
	out := *t
	out.Competitors = make(map[string]*Competitor, len(t.Competitors))
	for name, c := range t.Competitors {
		cc := *c
		if c.Members != nil {
			members := *c.Members
			cc.Members = &members
		}
		out.Competitors[name] = &cc
	}
	out.Order = append([]string(nil), t.Order...)
	out.Courts = append([]string(nil), t.Courts...)
	out.Matches = make([]*Match, len(t.Matches))
	for i, m := range t.Matches {
		mc := *m
		if m.Court != nil {
			court := *m.Court
			mc.Court = &court
		}
		if m.ScoreA != nil {
			s := *m.ScoreA
			mc.ScoreA = &s
		}
		if m.ScoreB != nil {
			s := *m.ScoreB
			mc.ScoreB = &s
		}
		out.Matches[i] = &mc
	}
	return &out
}

// TotalPossibleRounds is the round-robin style cap on generated rounds:
// one fewer than the number of registered competitors.
func (t *Tournament) TotalPossibleRounds() int {
	n := len(t.Competitors)
	if n < 2 {
		return 0
	}
	return n - 1
}
