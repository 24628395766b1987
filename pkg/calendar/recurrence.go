package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// MaxOccurrences caps how many dates one rule may produce.
const MaxOccurrences = 366

var (
	ErrInvalidRule  = errors.New("invalid recurrence rule")
	ErrInvalidUntil = errors.New("recurrence end is before its start")
)

// ExpandRecurrence returns the dates produced by an RRULE such as
// "FREQ=WEEKLY;COUNT=4" starting at start, up to and including until.
// The first date is always start itself.
func ExpandRecurrence(rule string, start, until time.Time) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, ErrInvalidRule
	}
	if until.Before(start) {
		return nil, ErrInvalidUntil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	r.DTStart(start)

	dates := r.Between(start, until, true)
	if len(dates) > MaxOccurrences {
		dates = dates[:MaxOccurrences]
	}
	return dates, nil
}
