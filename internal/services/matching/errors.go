package matching

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrSelfAction        = errors.New("cannot act on yourself")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrNotFound          = errors.New("match not found")
	ErrForbidden         = errors.New("not a member of this match")
	ErrInvalidTransition = errors.New("invalid match transition")
	ErrSuperLikeLimit    = errors.New("super like daily limit reached")
	ErrNoActionsToRewind = errors.New("no actions to rewind")
	ErrRewindExpired     = errors.New("rewind window expired")
	ErrRewindForbidden   = errors.New("rewind not allowed for this match")
)

// TooFastError carries the retry hint from the rolling-window throttle.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return fmt.Sprintf("too many actions, retry after %d seconds", e.RetryAfterSec)
}

func IsTooFast(err error) bool {
	var tooFast TooFastError
	return errors.As(err, &tooFast)
}
