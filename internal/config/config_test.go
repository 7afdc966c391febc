package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestUnmarshal_S3Section(t *testing.T) {
	v := viper.New()
	v.Set("s3.endpoint", "http://minio:9000")
	v.Set("s3.bucket", "my_bucket")
	v.Set("s3.access_key", "AKIA")
	v.Set("s3.secret_key", "shhh")
	v.Set("s3.prefix", "site/assets")
	v.Set("s3.path_style", true)
	v.Set("s3.default_acl", "public-read")

	cfg, err := Unmarshal(v)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.S3 == nil {
		t.Fatal("S3 should be set")
	}
	if cfg.S3.Endpoint != "http://minio:9000" {
		t.Errorf("s3.endpoint = %q", cfg.S3.Endpoint)
	}
	if cfg.S3.Bucket != "my_bucket" {
		t.Errorf("s3.bucket = %q", cfg.S3.Bucket)
	}
	if cfg.S3.Prefix != "site/assets" {
		t.Errorf("s3.prefix = %q", cfg.S3.Prefix)
	}
	if !cfg.S3.PathStyle {
		t.Error("s3.path_style should be true")
	}
	if cfg.S3.DefaultACL != "public-read" {
		t.Errorf("s3.default_acl = %q", cfg.S3.DefaultACL)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{S3: &S3Config{Bucket: "b", AccessKey: "a", SecretKey: "s"}}
	if err := Validate(valid); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"no s3", &Config{}},
		{"no bucket", &Config{S3: &S3Config{AccessKey: "a", SecretKey: "s"}}},
		{"no access key", &Config{S3: &S3Config{Bucket: "b", SecretKey: "s"}}},
		{"no secret key", &Config{S3: &S3Config{Bucket: "b", AccessKey: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.cfg); !errors.Is(err, ErrMissingS3) {
				t.Errorf("Validate = %v, want ErrMissingS3", err)
			}
		})
	}
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := &Config{S3: &S3Config{
		Bucket:    "my_bucket",
		AccessKey: "AKIA",
		SecretKey: "shhh",
		Prefix:    "backup",
	}}
	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms = %o, want 0600", perm)
	}

	v, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := Unmarshal(v)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.S3 == nil || got.S3.Bucket != "my_bucket" || got.S3.Prefix != "backup" {
		t.Errorf("loaded config = %+v", got.S3)
	}
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("AWS_S3_BUCKET", "env-bucket")
	t.Setenv("AWS_S3_ACCESS_KEY", "env-access")
	t.Setenv("AWS_S3_SECRET_KEY", "env-secret")

	v, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, err := Unmarshal(v)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.S3 == nil || cfg.S3.Bucket != "env-bucket" {
		t.Errorf("cfg.S3 = %+v, want bucket from env", cfg.S3)
	}
	if cfg.S3.AccessKey != "env-access" || cfg.S3.SecretKey != "env-secret" {
		t.Errorf("credentials not picked up from env")
	}
}

func TestLoad_RejectsPermissiveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("s3:\n  bucket: b\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path, true); err == nil {
		t.Error("Load should reject a world-readable config when checkPerms is set")
	}
}
