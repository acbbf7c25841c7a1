package database

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeExclusionViolation   = "23P01"
	codeCheckViolation       = "23514"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsOverlapViolation reports whether err came from the schedule exclusion constraint
// or from a serialization failure racing on the same rows.
func IsOverlapViolation(err error) bool {
	switch pqCode(err) {
	case codeExclusionViolation, codeSerializationFailure:
		return true
	}
	return false
}

// IsCheckViolation reports a CHECK constraint failure.
func IsCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}

// IsForeignKeyViolation reports a dangling reference on insert or update.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

// IsLockTimeout reports that a lock could not be acquired within lock_timeout.
func IsLockTimeout(err error) bool {
	switch pqCode(err) {
	case codeLockNotAvailable, codeQueryCanceled:
		return true
	}
	return false
}
