package cmd

import (
	"context"

	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/workspace/localfs"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a workspace",
	Long: `Create an empty workspace in some directory, which defaults to the current directory.

This is analogous to the "git init" command.`,
	Example: `% datarev init my-project
workspace initialized in /home/user/my-project`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := workspacePath()
		if len(args) > 0 {
			dir = args[0]
		}
		ws, err := localfs.Init(context.Background(), dir, workspaceOptions()...)
		if err != nil {
			if errors.Is(err, status.ErrProjectExists) {
				wrapFatalln("a workspace already exists there", err)
				return
			}
			wrapFatalln("create workspace", err)
			return
		}
		defer func() {
			_ = ws.Close()
		}()
		infoLogger.Printf("workspace initialized in %s", ws.Root())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
