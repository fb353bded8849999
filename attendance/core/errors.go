package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDriverNotFound  = errors.New("driver not found")
	ErrStorage         = errors.New("attendance storage failure")
	ErrSynchronization = errors.New("legacy workbook synchronization failed")
	ErrInvalidStatus   = errors.New("status must be present or absent")
	ErrInvalidDate     = errors.New("date is required")
	ErrRecordNotFound  = errors.New("attendance record not found")
)

// ImportError rejects a whole import. Errors holds one message per failed
// row; SuccessCount is how many entries would have been applied.
type ImportError struct {
	Message      string
	Errors       []string
	SuccessCount int
}

func (e *ImportError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
