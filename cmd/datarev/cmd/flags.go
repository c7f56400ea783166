// Copyright © 2019 One Concern

package cmd

import (
	"fmt"
	"strings"

	"github.com/oneconcern/datarev/pkg/dlogger"
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		logLevel string
	}
	workspace struct {
		path string
	}
	source struct {
		name   string
		url    string
		format string
	}
	stage struct {
		source    string
		name      string
		transform string
		params    []string
	}
	commit struct {
		message    string
		allowEmpty bool
	}
	export struct {
		format string
		output string
	}
	contributor struct {
		name  string
		email string
	}
	core struct {
		Template string
	}
}

var datarevFlags = flagsT{}

func addLogLevel(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&datarevFlags.root.logLevel, logLevel, dlogger.LogLevelInfo,
		fmt.Sprintf("The logging level. Levels by increasing order of verbosity: %s, %s, %s",
			dlogger.LogLevelNone, dlogger.LogLevelInfo, dlogger.LogLevelDebug))
	return logLevel
}

func addWorkspaceFlag(cmd *cobra.Command) string {
	workspace := "workspace"
	cmd.PersistentFlags().StringVar(&datarevFlags.workspace.path, workspace, "",
		"The workspace to work with. Defaults to the configured project, or the current directory")
	return workspace
}

func addSourceNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&datarevFlags.source.name, name, "", "The name of the source")
	return name
}

func addSourceURLFlag(cmd *cobra.Command) string {
	url := "url"
	cmd.Flags().StringVar(&datarevFlags.source.url, url, "", "The path to the data to import")
	return url
}

func addSourceFormatFlag(cmd *cobra.Command) string {
	format := "format"
	cmd.Flags().StringVar(&datarevFlags.source.format, format, "",
		"The format of the data. Detected when not specified")
	return format
}

func addStageSourceFlag(cmd *cobra.Command) string {
	source := "source"
	cmd.Flags().StringVar(&datarevFlags.stage.source, source, "", "The source to add the stage to")
	return source
}

func addStageNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&datarevFlags.stage.name, name, "", "The name of the stage")
	return name
}

func addStageTransformFlag(cmd *cobra.Command) string {
	transform := "transform"
	cmd.Flags().StringVar(&datarevFlags.stage.transform, transform, "",
		"The transform applied by the stage to the output of the previous stage")
	return transform
}

func addStageParamsFlag(cmd *cobra.Command) string {
	params := "param"
	cmd.Flags().StringSliceVar(&datarevFlags.stage.params, params, nil,
		"A key=value parameter of the transform. May be repeated")
	return params
}

func addCommitMessageFlag(cmd *cobra.Command) string {
	message := "message"
	cmd.Flags().StringVar(&datarevFlags.commit.message, message, "", "The message describing the new revision")
	return message
}

func addAllowEmptyFlag(cmd *cobra.Command) string {
	allowEmpty := "allow-empty"
	cmd.Flags().BoolVar(&datarevFlags.commit.allowEmpty, allowEmpty, false,
		"Record a revision even when nothing changed since the latest one")
	return allowEmpty
}

func addExportFormatFlag(cmd *cobra.Command) string {
	format := "format"
	cmd.Flags().StringVar(&datarevFlags.export.format, format, "", "The format to export to. Defaults to the native format")
	return format
}

func addExportOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVar(&datarevFlags.export.output, output, "", "The directory to export to")
	return output
}

func addContributorName(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&datarevFlags.contributor.name, name, "", "The name of the contributor")
	return name
}

func addContributorEmail(cmd *cobra.Command) string {
	email := "email"
	cmd.Flags().StringVar(&datarevFlags.contributor.email, email, "", "The email of the contributor")
	return email
}

func addTemplateFlag(cmd *cobra.Command) string {
	template := "template"
	cmd.PersistentFlags().StringVar(&datarevFlags.core.Template, template, "", "Pretty-print the output with a go template")
	return template
}

func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			wrapFatalln(fmt.Sprintf("failed to mark flag %q as required", flag), err)
		}
	}
}

// parseParams reads key=value pairs
func parseParams(params []string) (map[string]string, error) {
	if len(params) == 0 {
		return nil, nil
	}
	res := make(map[string]string, len(params))
	for _, param := range params {
		pos := strings.Index(param, "=")
		if pos <= 0 {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", param)
		}
		res[param[:pos]] = param[pos+1:]
	}
	return res, nil
}
