//go:build integration

package integration

import (
	"os"
	"strings"
	"testing"

	"opens3/internal/s3"
)

// getS3Env reads the live-store coordinates. Tests skip unless all three of
// AWS_S3_BUCKET, AWS_S3_ACCESS_KEY, and AWS_S3_SECRET_KEY are set.
// AWS_S3_ENDPOINT optionally points at a MinIO or other S3-compatible
// endpoint (path-style addressing is used when it is set).
func getS3Env(t *testing.T) s3.Options {
	t.Helper()
	bucket := os.Getenv("AWS_S3_BUCKET")
	accessKey := os.Getenv("AWS_S3_ACCESS_KEY")
	secretKey := os.Getenv("AWS_S3_SECRET_KEY")
	if bucket == "" || accessKey == "" || secretKey == "" {
		t.Skip("AWS_S3_BUCKET, AWS_S3_ACCESS_KEY, and AWS_S3_SECRET_KEY must be set for integration tests")
	}
	endpoint := strings.TrimSuffix(os.Getenv("AWS_S3_ENDPOINT"), "/")
	return s3.Options{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
		PathStyle: endpoint != "",
	}
}
