package fs

import (
	"os"
	"path/filepath"

	"github.com/framebluffer/KTX-Software/go/common/log"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/pkg/errors"
)

type LocalFS struct{}

func (l *LocalFS) OpenFile(path string) (File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create parent of %s", path)
	}
	open, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	s, err := stream.NewFileStream(open)
	if err != nil {
		open.Close()
		return nil, err
	}
	log.Debug("open local file", log.String("path", path))
	return &file{Stream: s, close: open.Close}, nil
}

func (l *LocalFS) Rename(src string, dst string) error {
	return os.Rename(src, dst)
}

func (l *LocalFS) DeleteFile(path string) error {
	return os.Remove(path)
}

func (l *LocalFS) Exist(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func NewLocalFs() *LocalFS {
	return &LocalFS{}
}
