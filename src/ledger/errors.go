package ledger

import "github.com/pkg/errors"

var (
	ErrEmptyLedger   = errors.New("ledger contains no blocks")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidRecord = errors.New("invalid block record")
)
