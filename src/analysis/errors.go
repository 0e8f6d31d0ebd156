package analysis

import "github.com/pkg/errors"

var ErrInvalidParams = errors.New("invalid analysis parameters")
