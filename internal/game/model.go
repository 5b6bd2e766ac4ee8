package game

import (
	"errors"
	"fmt"
)

const (
	// SeasonWeeks is the number of playable weeks in a season.
	SeasonWeeks = 15

	// Elasticity is the global price elasticity applied uniformly across products.
	Elasticity = -1.40

	// PrintLift is the flat demand lift for a printed design.
	PrintLift = 0.03

	// ReferenceMarkup converts a benchmark competitor price into the
	// reference price the forecast model positions against.
	ReferenceMarkup = 1.2

	// UnknownParty is the sentinel used when a ledger refId is absent or
	// cannot be split into supplier and material.
	UnknownParty = "unknown"
)

var (
	ErrNilState            = errors.New("state snapshot is nil")
	ErrWeekOutOfRange      = errors.New("week number out of range")
	ErrNonConsecutiveWeeks = errors.New("snapshots are not consecutive weeks")
	ErrUnknownEntryType    = errors.New("unknown ledger entry type")
	ErrLedgerWeekMismatch  = errors.New("ledger row outside target week")
)

// ValidateWeekNumber accepts weeks 0..SeasonWeeks. Week 0 is the opening
// snapshot produced before the first commit.
func ValidateWeekNumber(week int) error {
	if week < 0 || week > SeasonWeeks {
		return fmt.Errorf("%w: %d", ErrWeekOutOfRange, week)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
