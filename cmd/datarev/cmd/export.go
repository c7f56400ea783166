package cmd

import (
	"context"

	"github.com/oneconcern/datarev/pkg/format"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <revpath>",
	Short: "Save the dataset a revpath refers to",
	Long: `Resolve a revpath and save the resulting dataset to some directory, in some format.

The format defaults to the native datarev format.`,
	Example: `% datarev export HEAD:images.train --output /tmp/train --format jsonl
2 items exported to /tmp/train (format: jsonl)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, release := resolveRevpath(context.Background(), args[0])
		defer release()
		if res == nil {
			return
		}

		target := datarevFlags.export.format
		if target == "" {
			target = format.DefaultFormat
		}
		formats := format.NewDefault(format.WithFs(workspaceFs()), format.WithLogger(logger))
		if err := formats.Save(datarevFlags.export.output, target, res.Dataset); err != nil {
			wrapFatalln("export dataset", err)
			return
		}
		infoLogger.Printf("%d items exported to %s (format: %s)", res.Dataset.Len(), datarevFlags.export.output, target)
	},
}

func init() {
	requireFlags(exportCmd, addExportOutputFlag(exportCmd))
	addExportFormatFlag(exportCmd)

	rootCmd.AddCommand(exportCmd)
}
