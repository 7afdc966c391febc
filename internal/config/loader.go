package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Load reads the config file resolved by ResolveConfigPath (or path, when
// non-empty) and binds the credential env vars so a bucket and key pair can
// come entirely from the environment. Secret-bearing config files must not be
// group or world readable when checkPerms is set.
func Load(path string, checkPerms bool) (*viper.Viper, error) {
	if path == "" {
		path = ResolveConfigPath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	_ = v.BindEnv("s3.bucket", "AWS_S3_BUCKET")
	_ = v.BindEnv("s3.access_key", "AWS_S3_ACCESS_KEY")
	_ = v.BindEnv("s3.secret_key", "AWS_S3_SECRET_KEY")
	_ = v.BindEnv("s3.endpoint", "AWS_S3_ENDPOINT")

	if checkPerms {
		if err := checkConfigPermissions(path); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			// No file is fine when the environment supplies everything.
			return v, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return v, nil
}

func checkConfigPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	mode := info.Mode().Perm()

	if mode&0077 != 0 {
		return fmt.Errorf("config file %s has overly permissive mode %s (recommended: 0600)", path, mode)
	}
	return nil
}
