package ids

import "github.com/segmentio/ksuid"

// New returns a sortable identifier for new entities.
func New() string {
	return ksuid.New().String()
}
