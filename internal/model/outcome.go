package model

// Outcome is the terminal state of one download attempt.
//
// Every MediaMessage handed to the download manager reaches exactly one
// Outcome; there are no retries and no further transitions.
type Outcome int

const (
	// OutcomeSkipped means the destination file already existed (or the
	// message was recorded as finished in the history log) and no
	// transfer was performed.
	OutcomeSkipped Outcome = iota

	// OutcomeSucceeded means the media was transferred and written.
	OutcomeSucceeded

	// OutcomeFailed means the transfer or the file write failed. The
	// failure is isolated to this item; the run continues.
	OutcomeFailed
)

// String returns the outcome name as used in the history log.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "Skipped"
	case OutcomeSucceeded:
		return "Finished"
	case OutcomeFailed:
		return "Error"
	default:
		return "Unknown"
	}
}

// DownloadOutcome records the result of one download attempt.
type DownloadOutcome struct {
	// Message is the item this outcome belongs to.
	Message *MediaMessage

	// Status is the terminal state reached.
	Status Outcome

	// Path is the destination file path. Set for Succeeded and Skipped.
	Path string

	// Bytes is the number of bytes written. Zero unless Succeeded.
	Bytes int64

	// Err carries the cause for Failed outcomes, nil otherwise.
	Err error
}

// Summary holds the aggregate tallies of a download run.
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// Total returns the number of items that reached a terminal outcome.
func (s Summary) Total() int {
	return s.Succeeded + s.Skipped + s.Failed
}
