package fs

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/framebluffer/KTX-Software/go/common/constant"
	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
	"github.com/framebluffer/KTX-Software/go/common/log"
	"github.com/framebluffer/KTX-Software/go/io/stream"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const noSuchKey = "NoSuchKey"

// MinioFs stores files as objects of one bucket. Paths are relative to the
// prefix given in the uri path.
type MinioFs struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// Path is the key prefix every file path is resolved under.
func (fs *MinioFs) Path() string {
	return fs.prefix
}

func (fs *MinioFs) objectKey(p string) string {
	return strings.TrimPrefix(path.Join(fs.Path(), p), "/")
}

func (fs *MinioFs) stat(key string) (bool, error) {
	_, err := fs.client.StatObject(context.TODO(), fs.bucketName, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat object %s", key)
}

// OpenFile opens an existing object as a read-only stream. A missing object
// opens as an empty writable buffer that is uploaded on Close.
func (fs *MinioFs) OpenFile(p string) (File, error) {
	key := fs.objectKey(p)
	exist, err := fs.stat(key)
	if err != nil {
		return nil, err
	}
	if !exist {
		buf := stream.NewMemoryStream(nil)
		return &file{Stream: buf, close: func() error {
			data := buf.Bytes()
			log.Debug("upload object", log.String("bucket", fs.bucketName), log.String("key", key), log.Int("size", len(data)))
			_, err := fs.client.PutObject(context.TODO(), fs.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
			return errors.Wrapf(err, "upload object %s", key)
		}}, nil
	}

	object, err := fs.client.GetObject(context.TODO(), fs.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %s", key)
	}
	s, err := stream.NewObjectStream(object)
	if err != nil {
		object.Close()
		return nil, err
	}
	return &file{Stream: s, close: object.Close}, nil
}

// Rename copies src to dst and then removes src. A failed removal leaves both
// objects in place and is only logged.
func (fs *MinioFs) Rename(src string, dst string) error {
	srcKey, dstKey := fs.objectKey(src), fs.objectKey(dst)
	if _, err := fs.client.CopyObject(context.TODO(),
		minio.CopyDestOptions{Bucket: fs.bucketName, Object: dstKey},
		minio.CopySrcOptions{Bucket: fs.bucketName, Object: srcKey}); err != nil {
		return errors.Wrapf(err, "copy object %s to %s", srcKey, dstKey)
	}
	if err := fs.client.RemoveObject(context.TODO(), fs.bucketName, srcKey, minio.RemoveObjectOptions{}); err != nil {
		log.Warn("failed to remove renamed object", log.String("key", srcKey), log.Err(err))
	}
	return nil
}

func (fs *MinioFs) DeleteFile(p string) error {
	key := fs.objectKey(p)
	return errors.Wrapf(fs.client.RemoveObject(context.TODO(), fs.bucketName, key, minio.RemoveObjectOptions{}), "remove object %s", key)
}

func (fs *MinioFs) ReadFile(p string) ([]byte, error) {
	key := fs.objectKey(p)
	obj, err := fs.client.GetObject(context.TODO(), fs.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %s", key)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat object %s", key)
	}
	buf := make([]byte, info.Size)
	if n, err := io.ReadFull(obj, buf); err != nil {
		return nil, errors.Wrapf(err, "read object %s: got %d of %d bytes", key, n, info.Size)
	}
	return buf, nil
}

func (fs *MinioFs) Exist(p string) (bool, error) {
	return fs.stat(fs.objectKey(p))
}

// NewMinioFs connects to the store named by uri and creates the bucket when
// it is missing. The uri has the form
// s3://access:secret@bucket/prefix?endpoint_override=localhost%3A9000
func NewMinioFs(uri *url.URL) (*MinioFs, error) {
	endpoints := uri.Query()[constant.EndpointOverride]
	if len(endpoints) == 0 || endpoints[0] == "" {
		return nil, kerrors.ErrNoEndpoint
	}
	endpoint := endpoints[0]

	accessKey := uri.User.Username()
	secretKey, ok := uri.User.Password()
	if !ok {
		log.Warn("secret access key not set", log.String("endpoint", endpoint))
	}

	cli, err := minio.New(endpoint, &minio.Options{
		BucketLookup: minio.BucketLookupAuto,
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", endpoint)
	}

	fs := &MinioFs{client: cli, bucketName: uri.Host, prefix: uri.Path}
	log.Info("open minio fs", log.String("endpoint", endpoint), log.String("bucket", fs.bucketName), log.String("prefix", fs.prefix))

	exist, err := cli.BucketExists(context.TODO(), fs.bucketName)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %s", fs.bucketName)
	}
	if !exist {
		if err := cli.MakeBucket(context.TODO(), fs.bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "create bucket %s", fs.bucketName)
		}
	}
	return fs, nil
}
