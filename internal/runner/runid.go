package runner

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a sortable run identifier: a UTC timestamp with a short
// random suffix.
func NewRunID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return time.Now().UTC().Format("20060102T150405Z") + "-" + suffix
}
