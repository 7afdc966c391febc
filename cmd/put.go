package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"opens3/internal/s3"

	"github.com/spf13/cobra"
)

var (
	putContentType string
	putACL         string
	putHeaders     []string
)

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringVar(&putContentType, "content-type", "", "Content-Type for the upload (default: guessed from the key extension)")
	putCmd.Flags().StringVar(&putACL, "acl", "", "Canned ACL, e.g. private or public-read (default: private)")
	putCmd.Flags().StringArrayVar(&putHeaders, "header", nil, "Extra request header as name=value, e.g. x-amz-meta-author=me (repeatable)")
}

var putCmd = &cobra.Command{
	Use:   "put <file> <key>",
	Short: "Upload a file as an object",
	Long:  "Upload a local file (or stdin when file is '-') to the given object key in one PUT.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPut,
}

func runPut(cmd *cobra.Command, args []string) (err error) {
	client, cfg, err := newClient(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	file, key := args[0], args[1]
	data, err := readInput(cmd, file)
	if err != nil {
		return err
	}

	var opts []s3.OpenOption
	if putContentType != "" {
		opts = append(opts, s3.WithContentType(putContentType))
	}
	acl := putACL
	if acl == "" {
		acl = cfg.S3.DefaultACL
	}
	if acl != "" {
		opts = append(opts, s3.WithACL(acl))
	}
	for _, h := range putHeaders {
		name, value, ok := strings.Cut(h, "=")
		if !ok {
			return fmt.Errorf("invalid --header %q: want name=value", h)
		}
		opts = append(opts, s3.WithHeader(name, value))
	}

	obj, err := client.Open(key, s3.ModeWrite, opts...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, obj.Close(ctx)) }()

	if _, err := obj.Write(data); err != nil {
		return err
	}
	cmd.Printf("Uploading %d bytes to %s ...\n", len(data), obj.URL())
	return nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}
