// Package ktx reads and writes KTX 1.1 texture containers through a
// stream.Stream, so the same code serves files, buffers and objects.
package ktx

import (
	"bytes"
	"encoding/binary"

	"github.com/framebluffer/KTX-Software/go/common/constant"
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/pkg/errors"
)

// maxLevels bounds the mip chain of a 2^31 texel wide texture.
const maxLevels = 32

// Header is the fixed 64 byte preamble of a KTX 1.1 file.
type Header struct {
	GLType                uint32
	GLTypeSize            uint32
	GLFormat              uint32
	GLInternalFormat      uint32
	GLBaseInternalFormat  uint32
	PixelWidth            uint32
	PixelHeight           uint32
	PixelDepth            uint32
	NumberOfArrayElements uint32
	NumberOfFaces         uint32
	NumberOfMipmapLevels  uint32
	BytesOfKeyValueData   uint32

	// order is the byte order of the file the header was read from.
	order binary.ByteOrder
}

// ByteOrder reports the byte order of the words following the header.
func (h *Header) ByteOrder() binary.ByteOrder {
	if h.order == nil {
		return binary.LittleEndian
	}
	return h.order
}

// LevelCount is the number of mip levels stored in the file. A zero in the
// header asks the loader to generate mips and stores only the base level.
func (h *Header) LevelCount() int {
	if h.NumberOfMipmapLevels == 0 {
		return 1
	}
	return int(h.NumberOfMipmapLevels)
}

// FacesPerImage is how many face images each imageSize word covers one of.
// Only non-array cubemaps store faces separately.
func (h *Header) FacesPerImage() int {
	if h.NumberOfFaces == constant.CubeFaces && h.NumberOfArrayElements == 0 {
		return constant.CubeFaces
	}
	return 1
}

func (h *Header) words() []*uint32 {
	return []*uint32{
		&h.GLType, &h.GLTypeSize, &h.GLFormat, &h.GLInternalFormat, &h.GLBaseInternalFormat,
		&h.PixelWidth, &h.PixelHeight, &h.PixelDepth,
		&h.NumberOfArrayElements, &h.NumberOfFaces, &h.NumberOfMipmapLevels,
		&h.BytesOfKeyValueData,
	}
}

func (h *Header) Validate() error {
	if h.PixelWidth == 0 {
		return errors.Wrap(kerrors.ErrInvalidHeader, "pixel width is zero")
	}
	if h.PixelDepth > 0 && h.PixelHeight == 0 {
		return errors.Wrap(kerrors.ErrInvalidHeader, "3d texture with zero pixel height")
	}
	if h.NumberOfFaces != 1 && h.NumberOfFaces != constant.CubeFaces {
		return errors.Wrapf(kerrors.ErrInvalidHeader, "number of faces %d", h.NumberOfFaces)
	}
	if h.NumberOfFaces == constant.CubeFaces && h.PixelWidth != h.PixelHeight {
		return errors.Wrapf(kerrors.ErrInvalidHeader, "cubemap faces are %dx%d", h.PixelWidth, h.PixelHeight)
	}
	if h.NumberOfMipmapLevels > maxLevels {
		return errors.Wrapf(kerrors.ErrInvalidHeader, "number of mipmap levels %d", h.NumberOfMipmapLevels)
	}
	return nil
}

// ReadHeader decodes the header at the current position of s.
func ReadHeader(s stream.Stream) (*Header, error) {
	buf := make([]byte, constant.HeaderSize)
	if err := s.Read(buf); err != nil {
		return nil, errors.WithMessage(err, "read ktx header")
	}
	if !bytes.Equal(buf[:constant.IdentifierSize], constant.Identifier[:]) {
		return nil, errors.Wrap(kerrors.ErrUnknownFileFormat, "bad ktx identifier")
	}

	words := buf[constant.IdentifierSize:]
	h := &Header{}
	switch binary.LittleEndian.Uint32(words) {
	case constant.EndiannessNative:
		h.order = binary.LittleEndian
	case constant.EndiannessSwapped:
		h.order = binary.BigEndian
	default:
		return nil, errors.Wrapf(kerrors.ErrInvalidHeader, "endianness %#08x", binary.LittleEndian.Uint32(words))
	}
	for i, w := range h.words() {
		*w = h.order.Uint32(words[4*(i+1):])
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// WriteHeader encodes h at the current position of s in little endian order.
func WriteHeader(s stream.Stream, h *Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := s.Write(constant.Identifier[:], 1, constant.IdentifierSize); err != nil {
		return errors.WithMessage(err, "write ktx identifier")
	}

	words := h.words()
	buf := make([]byte, 4*(len(words)+1))
	binary.LittleEndian.PutUint32(buf, constant.EndiannessNative)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*(i+1):], *w)
	}
	if err := s.Write(buf, 4, len(words)+1); err != nil {
		return errors.WithMessage(err, "write ktx header")
	}
	return nil
}
