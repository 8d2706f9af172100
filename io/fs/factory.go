package fs

import (
	"net/url"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/options"
	"github.com/pkg/errors"
)

type Factory struct {
}

// Create returns a filesystem that needs no connection settings.
func (f *Factory) Create(fsType options.FsType) (Fs, error) {
	switch fsType {
	case options.InMemory:
		return NewMemoryFs(), nil
	case options.LocalFS:
		return NewLocalFs(), nil
	default:
		return nil, errors.Wrapf(kerrors.ErrInvalidArgument, "fs type %s needs a uri", fsType)
	}
}

func NewFsFactory() *Factory {
	return &Factory{}
}

// BuildFileSystem selects a filesystem from the uri scheme: file, mem or s3.
func BuildFileSystem(uri string) (Fs, error) {
	parsedUri, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(kerrors.ErrInvalidArgument, "parse uri: %v", err)
	}
	switch parsedUri.Scheme {
	case "file":
		return NewFsFactory().Create(options.LocalFS)
	case "mem":
		return NewFsFactory().Create(options.InMemory)
	case "s3":
		return NewMinioFs(parsedUri)
	default:
		return nil, errors.Wrapf(kerrors.ErrInvalidArgument, "unknown fs type %q", parsedUri.Scheme)
	}
}
