package editflow

import "errors"

// ErrNoProposal is returned by Accept when no proposal is staged.
var ErrNoProposal = errors.New("no pending proposal")
