// Package doctor runs connectivity self-checks for the CLI.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opens3/internal/config"
	"opens3/internal/s3"
)

type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

func Run(ctx context.Context, cfg *config.Config) []CheckResult {
	var results []CheckResult

	results = append(results, CheckResult{
		Name:   "config",
		OK:     cfg != nil,
		Detail: "configuration loaded",
	})

	if cfg != nil && cfg.S3 != nil {
		ok, detail := checkS3(ctx, cfg)
		results = append(results, CheckResult{Name: "s3", OK: ok, Detail: detail})
	} else {
		results = append(results, CheckResult{Name: "s3", OK: false, Detail: "s3 not configured"})
	}

	return results
}

// checkS3 builds a client from cfg and issues one single-key listing. A 403
// is called out separately so credential mistakes are distinguishable from
// endpoint mistakes.
func checkS3(ctx context.Context, cfg *config.Config) (bool, string) {
	client, err := s3.New(s3.Options{
		Endpoint:           cfg.S3.Endpoint,
		AccessKey:          cfg.S3.AccessKey,
		SecretKey:          cfg.S3.SecretKey,
		Bucket:             cfg.S3.Bucket,
		Prefix:             cfg.S3.Prefix,
		PathStyle:          cfg.S3.PathStyle,
		InsecureSkipVerify: cfg.S3.TLS != nil && cfg.S3.TLS.InsecureSkipVerify,
	})
	if err != nil {
		return false, fmt.Sprintf("s3 client init failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	paginator := client.ListPaginator(s3.ListOptions{MaxKeys: 1})
	if _, err := paginator.NextPage(ctx); err != nil {
		if errors.Is(err, s3.ErrAuthFailed) {
			return false, "s3 rejected the signature: check access_key and secret_key"
		}
		return false, fmt.Sprintf("s3 list failed: %v", err)
	}
	return true, fmt.Sprintf("s3 OK (bucket=%s, prefix=%s)", cfg.S3.Bucket, cfg.S3.Prefix)
}
