// Package competitor holds the per-player record of a tournament.
package competitor

// Competitor is the mutable record of one player. Opponent references are
// relations only; the tournament owns every Competitor.
type Competitor struct {
	name      string
	Points    int
	Wins      int
	Losses    int
	Ties      int // reserved, never incremented by the current rules
	opponents []*Competitor
}

// New creates a competitor with a clean record.
func New(name string) *Competitor {
	return &Competitor{name: name}
}

// Name returns the immutable, case-sensitive identity.
func (c *Competitor) Name() string { return c.name }

// Played returns the number of decided matches, byes included.
func (c *Competitor) Played() int { return c.Wins + c.Losses }

// WinPercentage returns wins/(wins+losses), or 0 before any match.
func (c *Competitor) WinPercentage() float64 {
	played := c.Played()
	if played == 0 {
		return 0.0
	}
	return float64(c.Wins) / float64(played)
}

// EachOpponent calls fn for every opponent in pairing order without copying
// the history.
func (c *Competitor) EachOpponent(fn func(*Competitor)) {
	for _, o := range c.opponents {
		fn(o)
	}
}

// OpponentCount returns the length of the opponent history.
func (c *Competitor) OpponentCount() int { return len(c.opponents) }

// HasFaced reports whether other is already in the opponent history.
func (c *Competitor) HasFaced(other *Competitor) bool {
	for _, o := range c.opponents {
		if o == other {
			return true
		}
	}
	return false
}

// Meet records a and b as opponents of each other.
func Meet(a, b *Competitor) {
	a.opponents = append(a.opponents, b)
	b.opponents = append(b.opponents, a)
}

// RecordWin scores a decided win.
func (c *Competitor) RecordWin() {
	c.Points++
	c.Wins++
}

// RecordLoss scores a loss. No points change.
func (c *Competitor) RecordLoss() {
	c.Losses++
}

// RecordBye scores an automatic win without adding an opponent.
func (c *Competitor) RecordBye() {
	c.RecordWin()
}
