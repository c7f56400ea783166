package cmd

import (
	"bytes"
	"strings"

	"github.com/blang/semver"
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/spf13/cobra"
)

// Build information, set with -ldflags
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the binary and the data layouts it supports
type VersionInfo struct {
	Version          string `json:"version,omitempty"`
	BuildDate        string `json:"buildDate,omitempty"`
	GitCommit        string `json:"gitCommit,omitempty"`
	GitState         string `json:"gitState,omitempty"`
	WorkspaceVersion string `json:"workspaceVersion"`
	Formats          string `json:"formats"`
}

const versionTemplateString = `Version: {{.Version}}
Build date: {{.BuildDate}}
Commit: {{.GitCommit}}
Working tree: {{.GitState}}
Workspace layout: {{.WorkspaceVersion}}
Formats: {{.Formats}}`

// NewVersionInfo yields the version of the binary.
//
// A version which is not semver (e.g. the output of git describe on an untagged tree) is reported as is.
func NewVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:          "dev",
		BuildDate:        BuildDate,
		GitCommit:        GitCommit,
		GitState:         GitState,
		WorkspaceVersion: model.CurrentWorkspaceVersion,
		Formats:          strings.Join(format.NewDefault().Formats(), ", "),
	}
	if Version == "" {
		return info
	}
	info.Version = Version
	if v, err := semver.ParseTolerant(Version); err == nil {
		info.Version = v.String()
	}
	if info.GitState == "" {
		info.GitState = "clean"
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of datarev",
	Long: `Print the version of datarev, with:
	* the semver of the release (from git describe --tags)
	* the date at which the binary was built
	* the git commit the binary was built from, and whether the working tree was dirty
	* the version of the workspace layout and the dataset formats it supports`,
	Run: func(cmd *cobra.Command, args []string) {
		var buf bytes.Buffer
		if err := outputTemplate("version", versionTemplateString).Execute(&buf, NewVersionInfo()); err != nil {
			wrapFatalln("executing template", err)
			return
		}
		infoLogger.Println(buf.String())
	},
}

func init() {
	addTemplateFlag(versionCmd)
	rootCmd.AddCommand(versionCmd)
}
