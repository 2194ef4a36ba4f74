package playground

import "errors"

// ErrClosed is returned by operations on a closed playground.
var ErrClosed = errors.New("playground closed")
