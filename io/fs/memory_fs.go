package fs

import (
	"os"

	"github.com/framebluffer/KTX-Software/go/io/stream"
)

type MemoryFs struct {
	files map[string]*stream.MemoryStream
}

// OpenFile returns a stream over a private copy of the named buffer, or an
// empty one if the path is missing. The copy is published under path when
// the file is closed, so other readers never see a partial write.
func (m *MemoryFs) OpenFile(path string) (File, error) {
	var initial []byte
	if f, ok := m.files[path]; ok {
		initial = append([]byte(nil), f.Bytes()...)
	}
	s := stream.NewMemoryStream(initial)
	return &file{Stream: s, close: func() error {
		m.files[path] = s
		return nil
	}}, nil
}

func (m *MemoryFs) Rename(path string, path2 string) error {
	f, ok := m.files[path]
	if !ok {
		return &os.PathError{Op: "rename", Path: path, Err: os.ErrNotExist}
	}
	m.files[path2] = f
	delete(m.files, path)
	return nil
}

func (m *MemoryFs) DeleteFile(path string) error {
	delete(m.files, path)
	return nil
}

func (m *MemoryFs) Exist(path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *MemoryFs) ReadFile(path string) ([]byte, error) {
	f, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), f.Bytes()...), nil
}

func NewMemoryFs() *MemoryFs {
	return &MemoryFs{
		files: make(map[string]*stream.MemoryStream),
	}
}
