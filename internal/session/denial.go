package session

// Denial represents a choice precondition that wasn't met. These are not
// system failures: the player stays at the node, sees the message, and may
// pick again. State is never mutated on a denial.
type Denial struct {
	Message string
}

func (d *Denial) Error() string {
	return d.Message
}

// NewDenial creates a player-facing denial.
func NewDenial(msg string) *Denial {
	return &Denial{Message: msg}
}
