package game

import (
	"fmt"
	"strings"
)

// EntryType is the closed set of financial event categories the simulation
// backend records. An unrecognized type is a validation error, never a
// silent drop: a misspelled or newly introduced type must not vanish from
// the cash waterfall without signal.
type EntryType string

const (
	EntryMarketing    EntryType = "marketing"
	EntryMaterialsSPT EntryType = "materials_spt"
	EntryMaterialsGMC EntryType = "materials_gmc"
	EntryProduction   EntryType = "production"
	EntryLogistics    EntryType = "logistics"
	EntryHolding      EntryType = "holding"
	EntryInterest     EntryType = "interest"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryMarketing, EntryMaterialsSPT, EntryMaterialsGMC,
		EntryProduction, EntryLogistics, EntryHolding, EntryInterest:
		return true
	}
	return false
}

// LedgerEntry is one immutable financial event row, scoped to exactly one
// week. RefID, when present, encodes "supplier:material".
type LedgerEntry struct {
	WeekNumber int       `json:"week_number"`
	EntryType  EntryType `json:"entry_type"`
	RefID      string    `json:"ref_id,omitempty"`
	Amount     float64   `json:"amount"`
}

// ValidateLedger checks rows against the closed entry-type set and the
// target week. Rows are expected to be pre-filtered to one week by the
// provider; a stray row from another week is rejected rather than skewing
// that week's sums.
func ValidateLedger(rows []LedgerEntry, week int) error {
	for i, row := range rows {
		if !row.EntryType.Valid() {
			return fmt.Errorf("%w: row %d has type %q", ErrUnknownEntryType, i, row.EntryType)
		}
		if row.WeekNumber != week {
			return fmt.Errorf("%w: row %d is for week %d, want %d", ErrLedgerWeekMismatch, i, row.WeekNumber, week)
		}
	}
	return nil
}

// splitRefID extracts supplier and material from a "supplier:material"
// reference, falling back to the unknown sentinel for any part that is
// absent or malformed.
func splitRefID(ref string) (supplier, material string) {
	supplier, material = UnknownParty, UnknownParty
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return supplier, material
	}
	parts := strings.SplitN(ref, ":", 2)
	if s := strings.TrimSpace(parts[0]); s != "" {
		supplier = s
	}
	if len(parts) == 2 {
		if m := strings.TrimSpace(parts[1]); m != "" {
			material = m
		}
	}
	return supplier, material
}
