package config

import (
	"errors"
	"fmt"
)

var ErrMissingS3 = errors.New("s3 configuration is required: set bucket, access_key, and secret_key")

func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.S3 == nil {
		return ErrMissingS3
	}
	if cfg.S3.Bucket == "" {
		return fmt.Errorf("%w (bucket is empty)", ErrMissingS3)
	}
	if cfg.S3.AccessKey == "" {
		return fmt.Errorf("%w (access_key is empty)", ErrMissingS3)
	}
	if cfg.S3.SecretKey == "" {
		return fmt.Errorf("%w (secret_key is empty)", ErrMissingS3)
	}
	return nil
}
