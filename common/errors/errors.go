package errors

import "errors"

// Stream error kinds. Every error returned by a stream realization wraps
// exactly one of these, so callers test with errors.Is.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	ErrWriteError          = errors.New("write error")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrSizeUnavailable     = errors.New("size unavailable")
)

// Container kinds reported by the ktx codec.
var (
	ErrUnknownFileFormat = errors.New("unknown file format")
	ErrInvalidHeader     = errors.New("invalid header")
)

var (
	ErrNoEndpoint = errors.New("no endpoint is specified")
)
