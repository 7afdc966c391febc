package cmd

import (
	"fmt"

	"opens3/internal/config"
	"opens3/internal/s3"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "opens3",
	Short: "File-like access to objects in S3-compatible storage",
	Long:  "opens3 reads, writes, lists, and deletes objects in an S3-compatible bucket using signed single-shot requests.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $OPENS3_CONFIG, then ~/.config/opens3/config.yaml, then /etc/opens3/config.yaml)")
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// loadConfig resolves, loads, and validates the effective configuration.
func loadConfig(checkPerms bool) (*config.Config, error) {
	v, err := config.Load(cfgFile, checkPerms)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func clientFromConfig(cfg *config.Config) (*s3.Client, error) {
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
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return client, nil
}

func newClient(checkPerms bool) (*s3.Client, *config.Config, error) {
	cfg, err := loadConfig(checkPerms)
	if err != nil {
		return nil, nil, err
	}
	client, err := clientFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
