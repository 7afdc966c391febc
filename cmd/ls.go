package cmd

import (
	"context"

	"opens3/internal/s3"

	"github.com/spf13/cobra"
)

var (
	lsDelimiter string
	lsRecursive bool
	lsLong      bool
)

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVar(&lsDelimiter, "delimiter", "/", "Group keys by this delimiter into directory-style entries")
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "List all keys under the prefix without grouping")
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Show size and last-modified time")
}

var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List objects under a key prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	client, _, err := newClient(false)
	if err != nil {
		return err
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	delimiter := lsDelimiter
	if lsRecursive {
		delimiter = ""
	}

	ctx := context.Background()
	paginator := client.ListPaginator(s3.ListOptions{Prefix: prefix, Delimiter: delimiter})
	total := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, entry := range page {
			printEntry(cmd, entry)
			total++
		}
	}
	if lsLong {
		cmd.Printf("%d entries\n", total)
	}
	return nil
}

func printEntry(cmd *cobra.Command, entry s3.ObjectInfo) {
	if !lsLong {
		cmd.Println(entry.Key)
		return
	}
	if entry.IsPrefix {
		cmd.Printf("%12s  %-20s  %s\n", "DIR", "", entry.Key)
		return
	}
	cmd.Printf("%12d  %-20s  %s\n", entry.Size, entry.LastModified.Format("2006-01-02 15:04:05"), entry.Key)
}
