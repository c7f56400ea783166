package cmd

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/oneconcern/datarev/pkg/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long:  "Create a config to use for datarev. Config file will be placed in $HOME/.datarev/datarev.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		contributor := model.Contributor{
			Name:  datarevFlags.contributor.name,
			Email: datarevFlags.contributor.email,
		}
		if contributor.Name == "" && contributor.Email == "" {
			wrapFatalln("a contributor name or email is required", nil)
			return
		}
		home := os.Getenv("HOME")
		if home == "" {
			u, err := user.Current()
			if u == nil || err != nil {
				wrapFatalln("could not get home directory for user", err)
				return
			}
			home = u.HomeDir
		}
		project := datarevFlags.workspace.path
		if project != "" {
			abs, err := filepath.Abs(project)
			if err != nil {
				wrapFatalln("resolve project path", err)
				return
			}
			project = abs
		}
		o, err := yaml.Marshal(CLIConfig{
			LogLevel:    datarevFlags.root.logLevel,
			Project:     project,
			Contributor: contributor,
		})
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		fs := afero.NewOsFs()
		dir := filepath.Join(home, ".datarev")
		if err = fs.MkdirAll(dir, 0700); err != nil {
			wrapFatalln("create config directory", err)
			return
		}
		target := filepath.Join(dir, "datarev.yaml")
		if err = afero.WriteFile(fs, target, o, 0600); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		infoLogger.Printf("config written to %s", target)
	},
}

func init() {
	addContributorEmail(configCreate)
	addContributorName(configCreate)

	configCmd.AddCommand(configCreate)
}
