package cmd

import (
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var detectCmd = &cobra.Command{
	Use:   "detect <path>",
	Short: "Detect the format of a dataset",
	Long: `Print the formats able to load the dataset at some path.

Exits with ENOENT status when no format matches.`,
	Example: `% datarev detect /data/images
jsonl`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formats := format.NewDefault(format.WithFs(workspaceFs()), format.WithLogger(logger))
		matches, err := formats.DetectAll(args[0])
		if err != nil {
			wrapFatalln("detect format", err)
			return
		}
		if len(matches) == 0 {
			wrapFatalWithCodef(int(unix.ENOENT), "no format matches %q (known formats: %v)", args[0], formats.Formats())
			return
		}
		for _, name := range matches {
			infoLogger.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
