package services

import (
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
)

// UnknownGroupError reports a group number the caller has no membership
// under. It matches common.ErrorNotFound.
type UnknownGroupError struct {
	Number int64
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group number %d", e.Number)
}

func (e *UnknownGroupError) Is(target error) bool { return target == common.ErrorNotFound }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorForbidden, fmt.Sprintf(format, args...))
}
