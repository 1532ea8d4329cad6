package utils

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage wraps the S3 client used for job photos. Uploads never pass
// through this server: the handler returns a presigned PUT URL and the
// browser uploads directly.
type Storage struct {
	client *s3.S3
	bucket string
	region string
}

func NewStorage(region, endpoint, bucket, accessKey, secretKey string) (*Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	cfg := &aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	if accessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: new session: %w", err)
	}
	return &Storage{client: s3.New(sess), bucket: bucket, region: region}, nil
}

// GetUploadURL returns a presigned PUT URL valid for one hour.
func (s *Storage) GetUploadURL(key, contentType string) (string, error) {
	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	url, err := req.Presign(time.Hour)
	if err != nil {
		return "", fmt.Errorf("storage: presign %s: %w", key, err)
	}
	return url, nil
}

// GetPublicURL returns the read URL for a stored object.
func (s *Storage) GetPublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// PhotoKey namespaces photo objects by job, type and upload time.
func PhotoKey(jobID int, photoType, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("jobs/%d/%s/%d.%s", jobID, photoType, time.Now().UnixMilli(), ext)
}
