package ktx

import (
	"bytes"
	"encoding/binary"

	"github.com/framebluffer/KTX-Software/go/common/constant"
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/common/utils"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/pkg/errors"
)

// KeyValue is one metadata entry. Value keeps its bytes verbatim, including
// any trailing NUL the writer put there.
type KeyValue struct {
	Key   string
	Value []byte
}

// ReadKeyValues decodes the metadata block that follows the header. s must
// be positioned at the end of the header.
func ReadKeyValues(s stream.Stream, h *Header) ([]KeyValue, error) {
	if h.BytesOfKeyValueData == 0 {
		return nil, nil
	}
	pos, err := s.Position()
	if err != nil {
		return nil, err
	}
	size, err := s.Size()
	if err != nil {
		return nil, err
	}
	if int64(h.BytesOfKeyValueData) > size-pos {
		return nil, errors.Wrapf(kerrors.ErrUnexpectedEndOfData, "key/value data of %d bytes at offset %d exceeds size %d", h.BytesOfKeyValueData, pos, size)
	}
	block := make([]byte, h.BytesOfKeyValueData)
	if err := s.Read(block); err != nil {
		return nil, errors.WithMessage(err, "read key/value data")
	}

	order := h.ByteOrder()
	var kvs []KeyValue
	for len(block) > 0 {
		if len(block) < 4 {
			return nil, errors.Wrap(kerrors.ErrInvalidHeader, "truncated key/value size")
		}
		n := int64(order.Uint32(block))
		block = block[4:]
		if n > int64(len(block)) {
			return nil, errors.Wrapf(kerrors.ErrInvalidHeader, "key/value of %d bytes exceeds block", n)
		}
		entry := block[:n]
		sep := bytes.IndexByte(entry, 0)
		if sep < 0 {
			return nil, errors.Wrap(kerrors.ErrInvalidHeader, "key is not NUL terminated")
		}
		kvs = append(kvs, KeyValue{Key: string(entry[:sep]), Value: append([]byte(nil), entry[sep+1:]...)})

		skip := n + utils.Padding(n, constant.LevelAlignment)
		if skip > int64(len(block)) {
			skip = int64(len(block))
		}
		block = block[skip:]
	}
	return kvs, nil
}

func encodeKeyValues(kvs []KeyValue) []byte {
	var buf bytes.Buffer
	for _, kv := range kvs {
		n := len(kv.Key) + 1 + len(kv.Value)
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(n))
		buf.Write(size[:])
		buf.WriteString(kv.Key)
		buf.WriteByte(0)
		buf.Write(kv.Value)
		buf.Write(make([]byte, utils.Padding(int64(n), constant.LevelAlignment)))
	}
	return buf.Bytes()
}
