package storage

import (
	"os"
	"server/db"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"`
	StorageType StorageType
	Path        string // Directory on disk or a prefix in a S3 bucket
	Region      string `gorm:"type:varchar(50)"`  // S3 only
	Endpoint    string `gorm:"type:varchar(300)"` // S3 only, for non-AWS providers
	AuthDetails string // S3 only, "key:secret"
	// URLPrefix is prepended to bucket-relative paths to form public URLs
	URLPrefix string `gorm:"type:varchar(300)"`
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath maps a bucket-relative path to the S3 object key.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC builds the S3 client for this bucket's credentials.
func (b *Bucket) CreateSVC() *s3.S3 {
	auth := strings.SplitN(b.AuthDetails, ":", 2)
	creds := credentials.NewStaticCredentials(auth[0], auth[len(auth)-1], "")
	cfg := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: creds,
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&cfg)))
}
