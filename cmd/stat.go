package cmd

import (
	"context"
	"errors"

	"opens3/internal/s3"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statCmd)
}

var statCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Show object metadata (size, last-modified, URL)",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func runStat(cmd *cobra.Command, args []string) error {
	client, _, err := newClient(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	info, err := client.HeadObject(ctx, args[0])
	if errors.Is(err, s3.ErrNotFound) {
		cmd.Printf("%s: not found\n", args[0])
		return err
	}
	if err != nil {
		return err
	}
	cmd.Printf("Key:           %s\n", info.Key)
	cmd.Printf("Size:          %d bytes\n", info.Size)
	if !info.LastModified.IsZero() {
		cmd.Printf("Last-Modified: %s\n", info.LastModified.Format("2006-01-02 15:04:05 MST"))
	}
	cmd.Printf("URL:           %s\n", client.URL(args[0]))
	return nil
}
