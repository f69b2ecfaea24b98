package repository

import (
	"errors"
	"hotel/shared/constant"

	"github.com/lib/pq"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports a unique index conflict anywhere in the error chain.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// IsExclusionViolation reports an exclusion constraint conflict, such as two active bookings
// claiming the same room for overlapping nights.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusionViolation
}

// IsInvalidText reports a value the column type cannot parse, such as a malformed UUID in a lookup.
func IsInvalidText(err error) bool {
	return pqCode(err) == constant.PqErrorCodeInvalidText
}
