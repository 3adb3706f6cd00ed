package models

// Scoring constants for the americano format: a decisive match awards 3
// points to the winner, a draw awards 1 point to each side.
const (
	PointsWin  = 3
	PointsDraw = 1
)

// Competitor is one ranking unit: either an individual player or a fixed
// pair entered under a single team name. Members is set only for pairs.
//
// All stat fields are derived from the match log and are recomputed in full
// after every result edit; they must never be mutated independently.
type Competitor struct {
	Name    string     `json:"name"`
	Members *[2]string `json:"members,omitempty"`

	Points int `json:"points"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
	Diff   int `json:"diff"`
	Played int `json:"played"`
}

// DisplayName renders the competitor for leaderboards, including the pair
// members when the entrant is a team.
func (c *Competitor) DisplayName() string {
	if c.Members == nil {
		return c.Name
	}
	return c.Name + " (" + c.Members[0] + " / " + c.Members[1] + ")"
}

// ResetStats zeroes every derived field before a full recomputation.
func (c *Competitor) ResetStats() {
	c.Points = 0
	c.Wins = 0
	c.Draws = 0
	c.Losses = 0
	c.Diff = 0
	c.Played = 0
}
