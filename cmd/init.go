package cmd

import (
	"fmt"
	"os"

	"opens3/internal/config"

	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init <bucket>",
	Short: "Write a starter configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.ResolveConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := &config.Config{S3: &config.S3Config{
		Bucket:     args[0],
		AccessKey:  os.Getenv("AWS_S3_ACCESS_KEY"),
		SecretKey:  os.Getenv("AWS_S3_SECRET_KEY"),
		DefaultACL: "private",
	}}
	if err := config.Write(cfg, path); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		cmd.Println("Fill in access_key and secret_key before use, or export AWS_S3_ACCESS_KEY / AWS_S3_SECRET_KEY.")
	}
	return nil
}
