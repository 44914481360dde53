package domain

import (
	"github.com/allisson/txvault/internal/errors"
)

// Record-specific error definitions.
var (
	// ErrRecordNotFound indicates no record exists with the requested id.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "record not found")

	// ErrRecordAlreadyExists indicates a record with the same id is already stored.
	ErrRecordAlreadyExists = errors.Wrap(errors.ErrConflict, "record already exists")

	// ErrPartyMismatch indicates the sealed party identifier differs from the stored one.
	ErrPartyMismatch = errors.New("party identifier mismatch")

	// ErrInvalidPartyID indicates an empty or oversized party identifier.
	ErrInvalidPartyID = errors.Wrap(errors.ErrInvalidInput, "invalid party id")
)

// MaxPartyIDLength is the maximum length of a party identifier.
const MaxPartyIDLength = 255
