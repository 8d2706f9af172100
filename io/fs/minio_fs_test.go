package fs_test

import (
	"os"
	"testing"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/io/fs"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/stretchr/testify/suite"
)

// MinioFsTestSuite needs a live server, e.g.
// MINIO_TEST_URI=s3://minioadmin:minioadmin@default/?endpoint_override=localhost%3A9000
type MinioFsTestSuite struct {
	suite.Suite
	fs fs.Fs
}

func (suite *MinioFsTestSuite) SetupSuite() {
	fs, err := fs.BuildFileSystem(os.Getenv("MINIO_TEST_URI"))
	suite.Require().NoError(err)
	suite.fs = fs
}

// writeObject replaces path, since existing objects open read-only.
func (suite *MinioFsTestSuite) writeObject(path string, data []byte) {
	suite.Require().NoError(suite.fs.DeleteFile(path))
	file, err := suite.fs.OpenFile(path)
	suite.Require().NoError(err)
	suite.Require().NoError(file.Write(data, 1, len(data)))
	suite.Require().NoError(file.Close())
}

func (suite *MinioFsTestSuite) TestMinioOpenFile() {
	suite.writeObject("a", []byte{1, 2, 3})

	file, err := suite.fs.OpenFile("a")
	suite.Require().NoError(err)
	defer file.Close()
	suite.Equal(stream.KindObject, file.Kind())

	size, err := file.Size()
	suite.NoError(err)
	suite.EqualValues(3, size)

	buf := make([]byte, 2)
	suite.NoError(file.Skip(1))
	suite.NoError(file.Read(buf))
	suite.Equal([]byte{2, 3}, buf)
	suite.ErrorIs(file.Read(buf), kerrors.ErrUnexpectedEndOfData)
	suite.ErrorIs(file.Write(buf, 1, 2), kerrors.ErrWriteError)
}

func (suite *MinioFsTestSuite) TestMinioRename() {
	suite.writeObject("a", []byte{1})

	err := suite.fs.Rename("a", "b")
	suite.NoError(err)

	exist, err := suite.fs.Exist("a")
	suite.NoError(err)
	suite.False(exist)

	content, err := suite.fs.ReadFile("b")
	suite.NoError(err)
	suite.Equal([]byte{1}, content)
}

func (suite *MinioFsTestSuite) TestMinioFsDeleteFile() {
	suite.writeObject("a", []byte{1})

	err := suite.fs.DeleteFile("a")
	suite.NoError(err)

	exist, err := suite.fs.Exist("a")
	suite.NoError(err)
	suite.False(exist)
}

func (suite *MinioFsTestSuite) TestMinioFsReadFile() {
	suite.writeObject("a", []byte{1})

	content, err := suite.fs.ReadFile("a")
	suite.NoError(err)
	suite.EqualValues([]byte{1}, content)
}

func (suite *MinioFsTestSuite) TestMinioFsExist() {
	exist, err := suite.fs.Exist("nonexist")
	suite.NoError(err)
	suite.False(exist)

	suite.writeObject("exist", []byte{1})

	exist, err = suite.fs.Exist("exist")
	suite.NoError(err)
	suite.True(exist)
}

func TestMinioFsSuite(t *testing.T) {
	if os.Getenv("MINIO_TEST_URI") == "" {
		t.Skip("MINIO_TEST_URI not set")
	}
	suite.Run(t, &MinioFsTestSuite{})
}
