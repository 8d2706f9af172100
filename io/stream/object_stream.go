package stream

import (
	"io"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

var _ Stream = (*ObjectStream)(nil)

// Object is the part of *minio.Object an ObjectStream reads through.
type Object interface {
	io.ReaderAt
	Stat() (minio.ObjectInfo, error)
}

var _ Object = (*minio.Object)(nil)

// ObjectStream is a read-only Stream over an object in an S3 compatible
// store. The cursor is kept by the stream and every read is positional.
type ObjectStream struct {
	obj Object
	pos int64
}

// NewObjectStream binds obj to a stream. obj is not closed by the stream.
func NewObjectStream(obj Object) (*ObjectStream, error) {
	if obj == nil {
		return nil, errors.Wrap(kerrors.ErrInvalidArgument, "nil object")
	}
	if m, ok := obj.(*minio.Object); ok && m == nil {
		return nil, errors.Wrap(kerrors.ErrInvalidArgument, "nil minio object")
	}
	return &ObjectStream{obj: obj}, nil
}

func (o *ObjectStream) Kind() Kind {
	return KindObject
}

func (o *ObjectStream) bound() bool {
	return o != nil && o.obj != nil
}

func (o *ObjectStream) Read(dst []byte) error {
	if !o.bound() {
		return errNilStream("read")
	}
	if dst == nil {
		return errors.Wrap(kerrors.ErrInvalidArgument, "nil destination buffer")
	}
	if len(dst) == 0 {
		return nil
	}
	size, err := o.Size()
	if err != nil {
		return rekind(kerrors.ErrUnexpectedEndOfData, "read", err)
	}
	if int64(len(dst)) > size-o.pos {
		return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "read %d bytes at offset %d, size %d", len(dst), o.pos, size)
	}
	n, err := o.obj.ReadAt(dst, o.pos)
	if n < len(dst) {
		return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "read %d bytes at offset %d, got %d: %v", len(dst), o.pos, n, err)
	}
	o.pos += int64(n)
	return nil
}

// Write always fails: objects are replaced whole, never patched in place.
func (o *ObjectStream) Write(src []byte, elemSize, elemCount int) error {
	if !o.bound() {
		return errNilStream("write")
	}
	if _, err := writeLength(src, elemSize, elemCount); err != nil {
		return err
	}
	return errors.Wrap(kerrors.ErrWriteError, "object stream is read-only")
}

func (o *ObjectStream) Skip(count int64) error {
	if !o.bound() {
		return errNilStream("skip")
	}
	if count < 0 {
		return errNegativeSkip(count)
	}
	size, err := o.Size()
	if err != nil {
		return rekind(kerrors.ErrUnexpectedEndOfData, "skip", err)
	}
	if count > size-o.pos {
		return errSkipPastEnd(o.pos, count, size)
	}
	o.pos += count
	return nil
}

func (o *ObjectStream) Position() (int64, error) {
	if !o.bound() {
		return 0, errNilStream("get position")
	}
	return o.pos, nil
}

func (o *ObjectStream) SetPosition(offset int64) error {
	if !o.bound() {
		return errNilStream("set position")
	}
	if offset < 0 {
		return errNegativeOffset(offset)
	}
	size, err := o.Size()
	if err != nil {
		return rekind(kerrors.ErrInvalidOperation, "set position", err)
	}
	if offset > size {
		return errOffsetPastEnd(offset, size)
	}
	o.pos = offset
	return nil
}

func (o *ObjectStream) Size() (int64, error) {
	if !o.bound() {
		return 0, errNilStream("get size")
	}
	info, err := o.obj.Stat()
	if err != nil {
		return 0, errors.Wrapf(kerrors.ErrSizeUnavailable, "stat object: %v", err)
	}
	return info.Size, nil
}
