package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the subset of the S3 API the coordinator needs.
// *s3.Client satisfies it; tests substitute a fake.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Coordinator stores CV files and derives their public URLs.
type Coordinator struct {
	client        ObjectPutter
	bucket        string
	keyPrefix     string
	publicBaseURL string
	timeout       time.Duration

	// now is swappable for deterministic key tests.
	now func() time.Time
}

// NewCoordinator creates a coordinator writing to bucket under keyPrefix.
// publicBaseURL is the base under which stored keys resolve publicly.
func NewCoordinator(client ObjectPutter, bucket, keyPrefix, publicBaseURL string, timeout time.Duration) *Coordinator {
	return &Coordinator{
		client:        client,
		bucket:        bucket,
		keyPrefix:     keyPrefix,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		timeout:       timeout,
		now:           time.Now,
	}
}

// Upload stores the file content under a collision-free key and returns the
// public URL of the stored object. The key embeds the upload timestamp in
// milliseconds followed by the original file name, so repeated uploads of
// the same file never overwrite each other.
func (c *Coordinator) Upload(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	key := c.objectKey(fileName)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          content,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentTypeFor(fileName)),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	return c.publicBaseURL + "/" + key, nil
}

// objectKey builds "<prefix><unix-millis>-<base name>". The client-supplied
// name is reduced to its base to keep path segments out of the key.
func (c *Coordinator) objectKey(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return fmt.Sprintf("%s%d-%s", c.keyPrefix, c.now().UnixMilli(), base)
}

// contentTypeFor maps the accepted CV extensions to their MIME types.
func contentTypeFor(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
