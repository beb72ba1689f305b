package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and stores return these
// (optionally wrapped) so services can decide how a failure is reported.
//
// - ErrNotFound: the remote check, marker or record does not exist
// - ErrUnavailable: a remote service could not be reached or answered 5xx
// - ErrInvalidState: a response or file was readable but inconsistent
// - ErrCancelled: the operator declined a confirmation prompt
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
	ErrCancelled    = errors.New("cancelled by operator")
)
