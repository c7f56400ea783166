package cmd

import (
	"context"

	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var sourceRemove = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a source from the workspace",
	Long: `Remove a source from the working tree, with its data.

Committed revisions are not affected.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ws, release, err := openLockedWorkspace(ctx)
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer release()

		if err = ws.RemoveSource(ctx, args[0]); err != nil {
			if errors.Is(err, status.ErrUnknownTarget) {
				wrapFatalWithCodef(int(unix.ENOENT), "didn't find source %q", args[0])
				return
			}
			wrapFatalln("remove source", err)
			return
		}
		infoLogger.Printf("source %s removed", args[0])
	},
}

func init() {
	sourceCmd.AddCommand(sourceRemove)
}
