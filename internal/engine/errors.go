package engine

import "errors"

// ErrContentUnavailable marks a failed catalog or store read. The event is
// reported to the user as retriable and no state is mutated.
var ErrContentUnavailable = errors.New("content unavailable")

// ErrStaleState marks a session referencing content that is no longer
// resolvable. The session is reset to the menu.
var ErrStaleState = errors.New("stale session state")
