package cmd

import (
	"context"

	"github.com/oneconcern/datarev/pkg/model"
	"github.com/spf13/cobra"
)

// stageCmd is the root command for all stage related subcommands
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Commands to manage the build stages of a source",
	Long: `A stage is a step in the build pipeline of a source.

Every source starts with the "root" stage, which loads the source data.
Other stages apply a transform to the output of the previous stage.`,
}

var stageAdd = &cobra.Command{
	Use:   "add",
	Short: "Append a stage to the pipeline of a source",
	Long: `Append a stage to the pipeline of a source of the working tree.

Built-in transforms:
  subset         keep the items of some subsets (subsets=a,b)
  head           keep the first items (count=N)
  rename-subset  rename a subset (from=a, to=b)
  match          keep the items matching a glob pattern (pattern=**/*.png, field=id|media)`,
	Example: `% datarev stage add --source images --name train --transform subset --param subsets=train
stage images.train added`,
	Run: func(cmd *cobra.Command, args []string) {
		params, err := parseParams(datarevFlags.stage.params)
		if err != nil {
			wrapFatalln("parse stage parameters", err)
			return
		}

		ctx := context.Background()
		ws, release, err := openLockedWorkspace(ctx)
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer release()

		err = ws.AddStage(ctx, datarevFlags.stage.source, model.StageDescriptor{
			Name:      datarevFlags.stage.name,
			Type:      model.StageTypeTransform,
			Transform: datarevFlags.stage.transform,
			Params:    params,
		})
		if err != nil {
			wrapFatalln("add stage", err)
			return
		}
		infoLogger.Printf("stage %s.%s added", datarevFlags.stage.source, datarevFlags.stage.name)
	},
}

func init() {
	requireFlags(stageAdd,
		addStageSourceFlag(stageAdd),
		addStageNameFlag(stageAdd),
		addStageTransformFlag(stageAdd),
	)
	addStageParamsFlag(stageAdd)

	stageCmd.AddCommand(stageAdd)
	rootCmd.AddCommand(stageCmd)
}
