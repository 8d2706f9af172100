package stream

import (
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/pkg/errors"
)

var _ Stream = (*MemoryStream)(nil)

// MemoryStream is a Stream over a byte slice that grows on write.
type MemoryStream struct {
	b []byte
	i int64
}

func NewMemoryStream(b []byte) *MemoryStream {
	return &MemoryStream{
		b: b,
	}
}

func (m *MemoryStream) Kind() Kind {
	return KindMemory
}

// Read leaves the position unchanged when fewer than len(dst) bytes remain.
func (m *MemoryStream) Read(dst []byte) error {
	if m == nil {
		return errNilStream("read")
	}
	if dst == nil {
		return errors.Wrap(kerrors.ErrInvalidArgument, "nil destination buffer")
	}
	if int64(len(dst)) > int64(len(m.b))-m.i {
		return errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "read %d bytes at offset %d, size %d", len(dst), m.i, len(m.b))
	}
	m.i += int64(copy(dst, m.b[m.i:]))
	return nil
}

func (m *MemoryStream) Write(src []byte, elemSize, elemCount int) error {
	if m == nil {
		return errNilStream("write")
	}
	n, err := writeLength(src, elemSize, elemCount)
	if err != nil {
		return err
	}
	copied := copy(m.b[m.i:], src[:n])
	m.b = append(m.b, src[copied:n]...)
	m.i += int64(n)
	return nil
}

func (m *MemoryStream) Skip(count int64) error {
	if m == nil {
		return errNilStream("skip")
	}
	if count < 0 {
		return errNegativeSkip(count)
	}
	if count > int64(len(m.b))-m.i {
		return errSkipPastEnd(m.i, count, int64(len(m.b)))
	}
	m.i += count
	return nil
}

func (m *MemoryStream) Position() (int64, error) {
	if m == nil {
		return 0, errNilStream("get position")
	}
	return m.i, nil
}

func (m *MemoryStream) SetPosition(offset int64) error {
	if m == nil {
		return errNilStream("set position")
	}
	if offset < 0 {
		return errNegativeOffset(offset)
	}
	if offset > int64(len(m.b)) {
		return errOffsetPastEnd(offset, int64(len(m.b)))
	}
	m.i = offset
	return nil
}

func (m *MemoryStream) Size() (int64, error) {
	if m == nil {
		return 0, errNilStream("get size")
	}
	return int64(len(m.b)), nil
}

// Bytes returns the current contents. The slice aliases the stream's buffer
// until the next write.
func (m *MemoryStream) Bytes() []byte {
	return m.b
}
