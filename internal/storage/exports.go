package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExportArchiver keeps timestamped copies of admin CSV exports in a bucket.
type ExportArchiver struct {
	client *s3.Client
	bucket string
}

func NewExportArchiver(client *s3.Client, bucket string) *ExportArchiver {
	return &ExportArchiver{client: client, bucket: bucket}
}

// Archive uploads one export snapshot. The key is prefixed by entity kind
// and stamped with the export time.
func (a *ExportArchiver) Archive(ctx context.Context, kind string, body []byte) (string, error) {
	key := fmt.Sprintf("exports/%s/%s.csv", kind, time.Now().UTC().Format("2006-01-02T15-04-05Z"))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s export: %w", kind, err)
	}

	return key, nil
}
