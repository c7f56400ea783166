package cmd

import (
	"context"

	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Record the working tree as a new revision",
	Long: `Record the sources of the working tree, with their data, as a new immutable revision.

This is analogous to the "git commit" command.`,
	Example: `% datarev commit --message "first import"
revision 1INzQ5TV4vAAfU2PbRFgPfnzEwR committed`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ws, release, err := openLockedWorkspace(ctx)
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer release()

		rev, err := ws.Commit(ctx, datarevFlags.commit.message, datarevFlags.commit.allowEmpty)
		if err != nil {
			if errors.Is(err, status.ErrEmptyCommit) {
				wrapFatalln("nothing changed since the latest revision, use --allow-empty to commit anyway", nil)
				return
			}
			wrapFatalln("commit", err)
			return
		}
		infoLogger.Printf("revision %s committed", rev.ID)
	},
}

func init() {
	requireFlags(commitCmd, addCommitMessageFlag(commitCmd))
	addAllowEmptyFlag(commitCmd)

	rootCmd.AddCommand(commitCmd)
}
