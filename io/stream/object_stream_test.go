package stream

import (
	"errors"
	"io"
	"testing"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	data    []byte
	statErr error
	reads   int
}

func (f *fakeObject) ReadAt(p []byte, off int64) (int, error) {
	f.reads++
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *fakeObject) Stat() (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	return minio.ObjectInfo{Key: "tex.ktx", Size: int64(len(f.data))}, nil
}

func TestNewObjectStreamNilObject(t *testing.T) {
	_, err := NewObjectStream(nil)
	require.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, err = NewObjectStream((*minio.Object)(nil))
	require.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}

func TestObjectStreamRead(t *testing.T) {
	obj := &fakeObject{data: []byte("0123456789")}
	s, err := NewObjectStream(obj)
	require.NoError(t, err)
	require.Equal(t, KindObject, s.Kind())

	got := make([]byte, 4)
	require.NoError(t, s.Read(got))
	require.Equal(t, []byte("0123"), got)

	require.NoError(t, s.Skip(2))
	require.NoError(t, s.Read(got))
	require.Equal(t, []byte("6789"), got)

	pos, err := s.Position()
	require.NoError(t, err)
	require.EqualValues(t, 10, pos)

	reads := obj.reads
	require.ErrorIs(t, s.Read(got[:1]), kerrors.ErrUnexpectedEndOfData)
	require.Equal(t, reads, obj.reads)
	pos, err = s.Position()
	require.NoError(t, err)
	require.EqualValues(t, 10, pos)
}

func TestObjectStreamSeek(t *testing.T) {
	s, err := NewObjectStream(&fakeObject{data: make([]byte, 100)})
	require.NoError(t, err)

	require.NoError(t, s.SetPosition(50))
	require.ErrorIs(t, s.Skip(60), kerrors.ErrUnexpectedEndOfData)
	require.ErrorIs(t, s.SetPosition(101), kerrors.ErrInvalidOperation)
	pos, err := s.Position()
	require.NoError(t, err)
	require.EqualValues(t, 50, pos)
	require.NoError(t, s.SetPosition(100))
}

func TestObjectStreamIsReadOnly(t *testing.T) {
	s, err := NewObjectStream(&fakeObject{data: []byte("abc")})
	require.NoError(t, err)
	require.ErrorIs(t, s.Write([]byte("x"), 1, 1), kerrors.ErrWriteError)
	require.ErrorIs(t, s.Write(nil, 1, 1), kerrors.ErrInvalidArgument)
	size, err := s.Size()
	require.NoError(t, err)
	require.EqualValues(t, 3, size)
}

func TestObjectStreamStatFailure(t *testing.T) {
	s, err := NewObjectStream(&fakeObject{statErr: errors.New("connection reset")})
	require.NoError(t, err)
	_, err = s.Size()
	require.ErrorIs(t, err, kerrors.ErrSizeUnavailable)
	require.Contains(t, err.Error(), "connection reset")
	err = s.Read(make([]byte, 1))
	require.ErrorIs(t, err, kerrors.ErrUnexpectedEndOfData)
	require.Contains(t, err.Error(), "connection reset")
	require.ErrorIs(t, s.Skip(1), kerrors.ErrUnexpectedEndOfData)
	err = s.SetPosition(0)
	require.ErrorIs(t, err, kerrors.ErrInvalidOperation)
	require.NotErrorIs(t, err, kerrors.ErrSizeUnavailable)
}
