package models

import "time"

// Snapshot is a point-in-time pull of the whole ledger.
// Records in a snapshot have already been normalized by the store layer.
type Snapshot struct {
	// Members is the distinct roster of member names, sorted.
	Members []string

	// Contributions holds every contribution, in no particular order.
	Contributions []*Contribution

	// Expenditures holds every expenditure, in no particular order.
	Expenditures []*Expenditure

	// TakenAt is when the snapshot was pulled. Used as the timestamp
	// fallback for records that lack one.
	TakenAt time.Time

	// Degraded counts records that needed at least one default filled in.
	Degraded int
}
