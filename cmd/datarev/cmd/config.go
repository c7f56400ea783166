package cmd

import (
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// keep names of fields the same as the serialized names, for viper
	LogLevel    string            `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	Project     string            `json:"project" yaml:"project" mapstructure:"project"` // default workspace
	Contributor model.Contributor `json:"contributor" yaml:"contributor" mapstructure:"contributor"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setDatarevParams fills in the flags that were not set on the command line
func (c *CLIConfig) setDatarevParams(persistent *pflag.FlagSet, flags *flagsT) {
	if !persistent.Changed("loglevel") && c.LogLevel != "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.workspace.path == "" {
		flags.workspace.path = c.Project
	}
}

// contributor yields the contributor recorded in workspaces and revisions
func (c *CLIConfig) contributor() model.Contributor {
	if c == nil {
		return model.Contributor{}
	}
	return c.Contributor
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage datarev CLI config.

Configuration for datarev is the common set of flags that are needed for most commands and do not change across runs,
analogous to "git config ...". `,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
