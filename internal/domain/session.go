package domain

// SessionState is the position of a single-pass review through the catalog.
type SessionState struct {
	RunID    string
	Cursor   int // Index of the card under review (0-based)
	Total    int // Number of cards in the session
	Complete bool
	Catalog  string // Fingerprint of the card list the session runs over
}

// Outcome is emitted once per reviewed card.
type Outcome struct {
	CardID int64
	Known  bool
	Date   string // Calendar day key, see DateKeyLayout
}

// Status labels used by presentation code.
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusComplete   = "complete"
)

// Status returns the state machine label for s.
func (s SessionState) Status() string {
	if s.Complete {
		return SessionStatusComplete
	}
	return SessionStatusInProgress
}
