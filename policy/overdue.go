package policy

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/models"
)

// Thresholds are the number of days a case may wait at each tier before it is overdue
type Thresholds struct {
	District int
	NLA      int
}

// DefaultThresholds are used when configuration does not override them
var DefaultThresholds = Thresholds{District: 30, NLA: 45}

const day = 24 * time.Hour

// OverdueDays is derived on every read and never stored. Only open and appealed cases
// accrue lateness, counted from the appeal if any, otherwise from filing.
func OverdueDays(c *models.Case, now time.Time, th Thresholds) int {
	if c.Status != models.StatusOpen && c.Status != models.StatusAppealed {
		return 0
	}

	var start time.Time
	switch {
	case c.AppealedAt != nil && !c.AppealedAt.IsZero():
		start = *c.AppealedAt
	case !c.CreatedAt.IsZero():
		start = c.CreatedAt
	default:
		return 0
	}

	elapsed := int(math.Ceil(float64(now.Sub(start)) / float64(day)))

	threshold := th.District
	if c.Level == models.LevelNLA {
		threshold = th.NLA
	}

	if overdue := elapsed - threshold; overdue > 0 {
		return overdue
	}
	return 0
}

// ErrNoHigherLevel is returned when a case cannot be escalated from its current tier
var ErrNoHigherLevel = errors.Wrap(models.InvalidTransitionError, "case cannot be escalated further")

// Escalate returns the tier an appeal moves a case to. Only district cases can be
// appealed, to nla; there is no path into court from here.
func Escalate(current models.Level) (models.Level, error) {
	if current.Normalize() == models.LevelDistrict {
		return models.LevelNLA, nil
	}
	return current, errors.Wrapf(ErrNoHigherLevel, "case is at level %s", current)
}
