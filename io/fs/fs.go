package fs

import (
	"github.com/framebluffer/KTX-Software/go/io/stream"
)

// File is an opened resource together with the stream over it. Close
// releases the resource; the stream must not be used afterwards.
type File interface {
	stream.Stream
	Close() error
}

type Fs interface {
	OpenFile(path string) (File, error)
	Rename(src string, dst string) error
	DeleteFile(path string) error
	Exist(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
}

type file struct {
	stream.Stream
	close func() error
}

func (f *file) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}
