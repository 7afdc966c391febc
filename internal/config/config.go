package config

import "github.com/spf13/viper"

type Config struct {
	S3 *S3Config `mapstructure:"s3" yaml:"s3"`
}

type S3Config struct {
	Endpoint   string     `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Bucket     string     `mapstructure:"bucket" yaml:"bucket"`
	AccessKey  string     `mapstructure:"access_key" yaml:"access_key"`
	SecretKey  string     `mapstructure:"secret_key" yaml:"secret_key"`
	Prefix     string     `mapstructure:"prefix" yaml:"prefix,omitempty"`
	PathStyle  bool       `mapstructure:"path_style" yaml:"path_style,omitempty"`
	DefaultACL string     `mapstructure:"default_acl" yaml:"default_acl,omitempty"`
	TLS        *TLSConfig `mapstructure:"tls" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
