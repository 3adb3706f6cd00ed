package models

// Match is one scheduled encounter between two competitors. Sides and round
// are fixed at generation time; only the score fields change afterwards,
// through result entry.
//
// Invariant: Played is true iff both scores are non-nil. Bye matches carry
// an empty SideB, are never playable and never affect standings.
type Match struct {
	ID    int    `json:"id"`
	Round int    `json:"round"`
	SideA string `json:"side_a"`
	SideB string `json:"side_b,omitempty"`

	Court  *string `json:"court,omitempty"`
	ScoreA *int    `json:"score_a,omitempty"`
	ScoreB *int    `json:"score_b,omitempty"`
	Played bool    `json:"played"`
	Bye    bool    `json:"bye,omitempty"`
}

// Involves reports whether the given competitor plays in this match.
func (m *Match) Involves(name string) bool {
	return m.SideA == name || m.SideB == name
}
