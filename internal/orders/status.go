package orders

import "strings"

// Status is a free-text label; only "requested" and "shipped" carry
// meaning for the workflow, anything else passes through unchanged.
type Status string

const (
	StatusRequested Status = "requested"
	StatusShipped   Status = "shipped"
)

// ParseStatus canonicalizes the recognized statuses case-insensitively
// at the HTTP boundary and leaves unknown labels as submitted.
func ParseStatus(s string) Status {
	switch strings.ToLower(s) {
	case string(StatusRequested):
		return StatusRequested
	case string(StatusShipped):
		return StatusShipped
	default:
		return Status(s)
	}
}

func (s Status) Is(target Status) bool {
	return strings.EqualFold(string(s), string(target))
}
