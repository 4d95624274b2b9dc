package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNoPeriod means no legislative period exists to scope a sequence
// allocation. This is an operator problem: seed a period (for example
// with `councilctl period create`) before accepting entities.
var ErrNoPeriod = errors.New("no legislative period exists, create one first")

// ErrMotionDecided guards terminal motion states: once a motion is
// accepted, rejected, withdrawn, not handled, or rejected by the
// presidium, no further status transition is allowed.
var ErrMotionDecided = errors.New("motion is no longer in deliberation")

// IsNotFound reports whether err is a lookup miss. Handlers map this to
// absence rather than a fault.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
