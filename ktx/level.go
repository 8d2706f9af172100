package ktx

import (
	"github.com/framebluffer/KTX-Software/go/common/constant"
	"github.com/framebluffer/KTX-Software/go/common/utils"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/pkg/errors"
)

// Level locates the image data of one mip level inside the container.
// Faces are stored back to back, each padded to 4 bytes.
type Level struct {
	Offset   int64
	FaceSize int64
	Faces    int
}

func (l Level) faceStride() int64 {
	return l.FaceSize + utils.Padding(l.FaceSize, constant.LevelAlignment)
}

// DataSize is the level's image bytes without padding.
func (l Level) DataSize() int64 {
	return l.FaceSize * int64(l.Faces)
}

// IndexLevels walks the level chain without reading image data. It leaves s
// positioned after the last level.
func IndexLevels(s stream.Stream, h *Header) ([]Level, error) {
	if err := s.SetPosition(constant.HeaderSize); err != nil {
		return nil, errors.WithMessage(err, "seek past header")
	}
	if err := s.Skip(int64(h.BytesOfKeyValueData)); err != nil {
		return nil, errors.WithMessage(err, "skip key/value data")
	}

	order := h.ByteOrder()
	faces := h.FacesPerImage()
	levels := make([]Level, 0, h.LevelCount())
	word := make([]byte, 4)
	for i := 0; i < h.LevelCount(); i++ {
		if err := s.Read(word); err != nil {
			return nil, errors.WithMessagef(err, "read image size of level %d", i)
		}
		offset, err := s.Position()
		if err != nil {
			return nil, err
		}
		l := Level{Offset: offset, FaceSize: int64(order.Uint32(word)), Faces: faces}
		if err := s.Skip(l.faceStride() * int64(faces)); err != nil {
			return nil, errors.WithMessagef(err, "skip data of level %d", i)
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// ReadLevel returns the level's faces concatenated, padding removed.
func ReadLevel(s stream.Stream, l Level) ([]byte, error) {
	data := make([]byte, l.DataSize())
	for face := 0; face < l.Faces; face++ {
		if err := s.SetPosition(l.Offset + int64(face)*l.faceStride()); err != nil {
			return nil, errors.WithMessagef(err, "seek to face %d", face)
		}
		if err := s.Read(data[int64(face)*l.FaceSize : int64(face+1)*l.FaceSize]); err != nil {
			return nil, errors.WithMessagef(err, "read face %d", face)
		}
	}
	return data, nil
}
