package cmd

import (
	"context"
	"errors"
	"os"

	"opens3/internal/s3"

	"github.com/spf13/cobra"
)

var getOutput string

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "Write the object to this file instead of stdout")
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Download an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) (err error) {
	client, _, err := newClient(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	obj, err := client.Open(args[0], s3.ModeRead)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, obj.Close(ctx)) }()

	data, err := obj.Read(ctx)
	if err != nil {
		return err
	}

	if getOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(getOutput, data, 0644); err != nil {
		return err
	}
	cmd.Printf("Wrote %d bytes to %s\n", len(data), getOutput)
	return nil
}
