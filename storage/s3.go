package storage

import (
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	Bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		Bucket:   *bucket,
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
		Body:   reader,
	})
	if err != nil {
		return 0, err
	}
	head, err := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	if err != nil || head.ContentLength == nil {
		return 0, err
	}
	return *head.ContentLength, nil
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}

// Serve redirects to the object's public URL; S3 buckets used here are
// public-read galleries, not private stores.
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.Redirect(writer, request, s.URLFor(path), http.StatusFound)
}

func (s *S3Storage) URLFor(path string) string {
	return strings.TrimSuffix(s.Bucket.URLPrefix, "/") + "/" + s.Bucket.GetRemotePath(path)
}

func (s *S3Storage) GetBucket() *Bucket {
	return &s.Bucket
}
