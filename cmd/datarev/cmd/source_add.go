package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var sourceAdd = &cobra.Command{
	Use:   "add",
	Short: "Import a source in the workspace",
	Long: `Import some data as a new source of the working tree.

The data is copied into the workspace. Its format is detected, unless specified.`,
	Example: `% datarev source add --name images --url /data/images
source images imported (format: jsonl)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ws, release, err := openLockedWorkspace(ctx)
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer release()

		src, err := ws.ImportSource(ctx, datarevFlags.source.name, datarevFlags.source.url, datarevFlags.source.format)
		if err != nil {
			wrapFatalln("import source", err)
			return
		}
		infoLogger.Printf("source %s imported (format: %s)", src.Name, src.Format)
	},
}

func init() {
	requireFlags(sourceAdd,
		addSourceNameFlag(sourceAdd),
		addSourceURLFlag(sourceAdd),
	)
	addSourceFormatFlag(sourceAdd)

	sourceCmd.AddCommand(sourceAdd)
}
