package models

// Snapshot is the structured export of a full tournament: everything needed
// to rebuild identical standings and match history in another process.
// Competitors are listed in registration order; derived stats are included
// for human inspection but importers recompute them from Matches.
type Snapshot struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Mode        PairingMode  `json:"mode"`
	CourtPolicy CourtPolicy  `json:"court_policy"`
	Competitors []Competitor `json:"competitors"`
	Matches     []Match      `json:"matches"`
	Courts      []string     `json:"courts,omitempty"`

	CurrentRound int  `json:"current_round"`
	AllowByes    bool `json:"allow_byes"`
	Finalized    bool `json:"finalized"`
	NextMatchID  int  `json:"next_match_id"`
}
