package services

import "errors"

// Sentinel errors shared by the services and mapped to HTTP statuses in the
// handlers package. Pairing-level failures (ErrNoValidPairing,
// ErrInsufficientCourts) live in the pairing package and pass through
// wrapped.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament id already exists")
	ErrNameRequired       = errors.New("name is required")

	// Registration
	ErrDuplicateCompetitor = errors.New("competitor is already registered")

	// Round generation
	ErrInvalidCompetitorCount = errors.New("invalid competitor count for round generation")
	ErrRoundCapExceeded       = errors.New("maximum number of rounds reached")

	// Result entry
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidScore  = errors.New("scores must be non-negative integers")

	// Lifecycle
	ErrTournamentFinalized = errors.New("tournament is finalized")

	// Snapshots
	ErrSnapshotInvalid    = errors.New("snapshot document is invalid")
	ErrBackupUnavailable  = errors.New("snapshot backup storage is not configured")
	ErrRoundOutOfRange    = errors.New("round has not been generated")
	ErrInvalidPairingMode = errors.New("unknown pairing mode")
	ErrInvalidCourtPolicy = errors.New("unknown court policy")
)
