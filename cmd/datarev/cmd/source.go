package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// sourceCmd is the root command for all source related subcommands
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Commands to manage the sources of a workspace",
	Long: `A source is some data imported in a workspace, together with the pipeline of stages
building datasets from this data.`,
}

func init() {
	addTemplateFlag(sourceCmd)
	rootCmd.AddCommand(sourceCmd)
}

// dirSize yields the total size of the files under some path
func dirSize(fs afero.Fs, path string) (int64, error) {
	var size int64
	err := afero.Walk(fs, path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
