package ktx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/framebluffer/KTX-Software/go/common/constant"
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/common/log"
	"github.com/framebluffer/KTX-Software/go/common/utils"
	"github.com/framebluffer/KTX-Software/go/io/fs"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/pkg/errors"
)

// Texture is a decoded container. Levels[i] holds the faces of mip level i
// concatenated without padding.
type Texture struct {
	Header    Header
	KeyValues []KeyValue
	Levels    [][]byte
}

// ReadTexture decodes a whole container starting at offset 0 of s.
func ReadTexture(s stream.Stream) (*Texture, error) {
	if err := s.SetPosition(0); err != nil {
		return nil, err
	}
	h, err := ReadHeader(s)
	if err != nil {
		return nil, err
	}
	kvs, err := ReadKeyValues(s, h)
	if err != nil {
		return nil, err
	}
	index, err := IndexLevels(s, h)
	if err != nil {
		return nil, err
	}

	t := &Texture{Header: *h, KeyValues: kvs, Levels: make([][]byte, len(index))}
	for i, l := range index {
		if t.Levels[i], err = ReadLevel(s, l); err != nil {
			return nil, errors.WithMessagef(err, "level %d", i)
		}
	}
	return t, nil
}

// WriteTexture encodes t at the current position of s. The header's level
// and key/value byte counts are derived from t.
func WriteTexture(s stream.Stream, t *Texture) error {
	if len(t.Levels) == 0 {
		return errors.Wrap(kerrors.ErrInvalidArgument, "texture has no levels")
	}
	kv := encodeKeyValues(t.KeyValues)
	if err := checkWord(int64(len(kv)), "key/value data"); err != nil {
		return err
	}

	h := t.Header
	faces := h.FacesPerImage()
	faceSizes, err := levelFaceSizes(t.Levels, faces)
	if err != nil {
		return err
	}
	h.BytesOfKeyValueData = uint32(len(kv))
	if h.NumberOfMipmapLevels != 0 || len(t.Levels) != 1 {
		h.NumberOfMipmapLevels = uint32(len(t.Levels))
	}
	if err := WriteHeader(s, &h); err != nil {
		return err
	}
	if len(kv) > 0 {
		if err := s.Write(kv, 1, len(kv)); err != nil {
			return errors.WithMessage(err, "write key/value data")
		}
	}

	word := make([]byte, 4)
	for i, data := range t.Levels {
		faceSize := faceSizes[i]
		binary.LittleEndian.PutUint32(word, uint32(faceSize))
		if err := s.Write(word, 4, 1); err != nil {
			return errors.WithMessagef(err, "write image size of level %d", i)
		}
		if faceSize == 0 {
			continue
		}
		pad := make([]byte, utils.Padding(int64(faceSize), constant.LevelAlignment))
		for face := 0; face < faces; face++ {
			if err := s.Write(data[face*faceSize:], 1, faceSize); err != nil {
				return errors.WithMessagef(err, "write level %d face %d", i, face)
			}
			if err := s.Write(pad, 1, len(pad)); err != nil {
				return errors.WithMessagef(err, "pad level %d face %d", i, face)
			}
		}
	}
	return nil
}

// levelFaceSizes checks every level before anything is written, so a bad
// level never leaves a partial container behind.
func levelFaceSizes(levels [][]byte, faces int) ([]int, error) {
	sizes := make([]int, len(levels))
	for i, data := range levels {
		if len(data)%faces != 0 {
			return nil, errors.Wrapf(kerrors.ErrInvalidArgument, "level %d of %d bytes does not split into %d faces", i, len(data), faces)
		}
		sizes[i] = len(data) / faces
		if err := checkWord(int64(sizes[i]), fmt.Sprintf("level %d face", i)); err != nil {
			return nil, err
		}
	}
	return sizes, nil
}

func checkWord(n int64, what string) error {
	if n > math.MaxUint32 {
		return errors.Wrapf(kerrors.ErrInvalidArgument, "%s of %d bytes does not fit in 32 bits", what, n)
	}
	return nil
}

// Save writes t to a temporary sibling of path and renames it into place,
// so readers never observe a partly written container.
func Save(fsys fs.Fs, path string, t *Texture) error {
	tmpPath := utils.GetTempFilePath(path)
	log.Debug("save texture", log.String("path", path), log.String("tmpPath", tmpPath), log.Int("levels", len(t.Levels)))

	output, err := fsys.OpenFile(tmpPath)
	if err != nil {
		return errors.Wrap(err, "save texture")
	}
	if err = WriteTexture(output, t); err != nil {
		output.Close()
		if derr := fsys.DeleteFile(tmpPath); derr != nil {
			log.Warn("failed to remove temporary texture", log.String("path", tmpPath), log.Err(derr))
		}
		return err
	}
	if err = output.Close(); err != nil {
		return errors.Wrap(err, "save texture")
	}
	if err = fsys.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "save texture")
	}
	log.Debug("save texture success", log.String("path", path))
	return nil
}

// Load opens path on fsys and decodes the container.
func Load(fsys fs.Fs, path string) (*Texture, error) {
	exist, err := fsys.Exist(path)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, errors.Wrapf(kerrors.ErrInvalidArgument, "texture %s does not exist", path)
	}
	input, err := fsys.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load texture")
	}
	defer input.Close()

	t, err := ReadTexture(input)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", path)
	}
	log.Debug("load texture", log.String("path", path), log.Uint32("width", t.Header.PixelWidth), log.Int("levels", len(t.Levels)))
	return t, nil
}
