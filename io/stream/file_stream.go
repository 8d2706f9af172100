package stream

import (
	"io"
	"os"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/pkg/errors"
)

var _ Stream = (*FileStream)(nil)

// FileStream is a Stream over an open *os.File. The file must be opened with
// a mode that suits the operations the caller will use; mismatches surface
// as read or write failures.
type FileStream struct {
	file *os.File
}

// NewFileStream binds f to a stream. f is not closed by the stream.
func NewFileStream(f *os.File) (*FileStream, error) {
	if f == nil {
		return nil, errors.Wrap(kerrors.ErrInvalidArgument, "nil file")
	}
	return &FileStream{file: f}, nil
}

func (s *FileStream) Kind() Kind {
	return KindFile
}

func (s *FileStream) bound() bool {
	return s != nil && s.file != nil
}

// Read fails with ErrUnexpectedEndOfData on a short read; the file position
// then reflects the bytes that were consumed.
func (s *FileStream) Read(dst []byte) error {
	if !s.bound() {
		return errNilStream("read")
	}
	if dst == nil {
		return errors.Wrap(kerrors.ErrInvalidArgument, "nil destination buffer")
	}
	if n, err := io.ReadFull(s.file, dst); err != nil {
		return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "read %d bytes, got %d: %v", len(dst), n, err)
	}
	return nil
}

func (s *FileStream) Write(src []byte, elemSize, elemCount int) error {
	if !s.bound() {
		return errNilStream("write")
	}
	n, err := writeLength(src, elemSize, elemCount)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	written, err := s.file.Write(src[:n])
	if err != nil {
		return errors.Wrapf(kerrors.ErrWriteError, "wrote %d of %d bytes: %v", written, n, err)
	}
	if written != n {
		return errors.Wrapf(kerrors.ErrWriteError, "wrote %d of %d bytes", written, n)
	}
	return nil
}

// Skip does not extend the file: a skip past the end is rejected before the
// position moves.
func (s *FileStream) Skip(count int64) error {
	if !s.bound() {
		return errNilStream("skip")
	}
	if count < 0 {
		return errNegativeSkip(count)
	}
	pos, err := s.Position()
	if err != nil {
		return rekind(kerrors.ErrUnexpectedEndOfData, "skip", err)
	}
	size, err := s.Size()
	if err != nil {
		return rekind(kerrors.ErrUnexpectedEndOfData, "skip", err)
	}
	if count > size-pos {
		return errSkipPastEnd(pos, count, size)
	}
	if _, err := s.file.Seek(count, io.SeekCurrent); err != nil {
		return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "skip %d bytes: %v", count, err)
	}
	return nil
}

func (s *FileStream) Position() (int64, error) {
	if !s.bound() {
		return 0, errNilStream("get position")
	}
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrapf(kerrors.ErrInvalidOperation, "get position: %v", err)
	}
	return pos, nil
}

func (s *FileStream) SetPosition(offset int64) error {
	if !s.bound() {
		return errNilStream("set position")
	}
	if offset < 0 {
		return errNegativeOffset(offset)
	}
	size, err := s.Size()
	if err != nil {
		return rekind(kerrors.ErrInvalidOperation, "set position", err)
	}
	if offset > size {
		return errOffsetPastEnd(offset, size)
	}
	if _, err := s.file.Seek(offset, io.SeekStart); err != nil {
		return errors.Wrapf(kerrors.ErrInvalidOperation, "seek to %d: %v", offset, err)
	}
	return nil
}

// Size stats the open handle so the cursor is left untouched.
func (s *FileStream) Size() (int64, error) {
	if !s.bound() {
		return 0, errNilStream("get size")
	}
	info, err := s.file.Stat()
	if err != nil {
		return 0, errors.Wrapf(kerrors.ErrSizeUnavailable, "stat %s: %v", s.file.Name(), err)
	}
	return info.Size(), nil
}
