// Package stream provides the byte-stream abstraction the ktx codec reads
// and writes through, with one realization per backing store.
//
// A Stream never owns its backing resource. Whoever opened the file, buffer
// or object closes it after the Stream is no longer used. A Stream is not
// safe for concurrent use.
package stream

import (
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/pkg/errors"
)

type Kind int8

const (
	KindFile Kind = iota + 1
	KindMemory
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindMemory:
		return "memory"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Stream is a cursor over addressable bytes. After any successful call
// 0 <= Position() <= Size() holds.
type Stream interface {
	Kind() Kind
	// Read fills dst completely from the current position.
	Read(dst []byte) error
	// Write writes elemSize*elemCount bytes from the front of src.
	Write(src []byte, elemSize, elemCount int) error
	// Skip advances the position by count bytes without transferring data.
	Skip(count int64) error
	Position() (int64, error)
	// SetPosition moves to an absolute offset no greater than Size().
	SetPosition(offset int64) error
	Size() (int64, error)
}

// writeLength validates the arguments of Write and returns the number of
// bytes to transfer.
func writeLength(src []byte, elemSize, elemCount int) (int, error) {
	if src == nil {
		return 0, errors.Wrap(kerrors.ErrInvalidArgument, "nil source buffer")
	}
	if elemSize < 0 || elemCount < 0 {
		return 0, errors.Wrapf(kerrors.ErrInvalidArgument, "negative element size %d or count %d", elemSize, elemCount)
	}
	// Compare by division so a huge product cannot wrap.
	if elemSize != 0 && elemCount > len(src)/elemSize {
		return 0, errors.Wrapf(kerrors.ErrInvalidArgument, "write of %d elements of %d bytes exceeds source buffer of %d", elemCount, elemSize, len(src))
	}
	return elemSize * elemCount, nil
}

// rekind reports a failure from a nested call under the kind of the
// operation that made it, keeping the cause in the message.
func rekind(kind error, op string, cause error) error {
	if errors.Is(cause, kerrors.ErrInvalidArgument) {
		return cause
	}
	return errors.Wrapf(kind, "%s: %v", op, cause)
}

func errNilStream(op string) error {
	return errors.Wrapf(kerrors.ErrInvalidArgument, "%s on nil stream", op)
}

func errNegativeSkip(count int64) error {
	return errors.Wrapf(kerrors.ErrInvalidArgument, "negative skip count %d", count)
}

func errNegativeOffset(offset int64) error {
	return errors.Wrapf(kerrors.ErrInvalidArgument, "negative offset %d", offset)
}

func errSkipPastEnd(pos, count, size int64) error {
	return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "skip %d bytes at offset %d past size %d", count, pos, size)
}

func errOffsetPastEnd(offset, size int64) error {
	return errors.Wrapf(kerrors.ErrInvalidOperation, "offset %d exceeds size %d", offset, size)
}
