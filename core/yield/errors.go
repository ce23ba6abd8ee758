package yield

import "errors"

// ErrUpstreamUnavailable marks a failed market snapshot fetch with no safe
// fallback. The optimizer surfaces it instead of silently defaulting.
var ErrUpstreamUnavailable = errors.New("market data unavailable")

// ErrNoCandidates marks a vehicle snapshot with an empty allowed-modes set
// and no current mode recorded. That is a data-integrity problem in the
// snapshot, surfaced rather than guessed around.
var ErrNoCandidates = errors.New("no candidate modes")
