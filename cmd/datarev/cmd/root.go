// Copyright © 2019 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/oneconcern/datarev/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "DATAREV"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datarev",
	Short: "Datarev versions datasets",
	Long: `Datarev versions datasets the way git versions source code.

A workspace holds sources: data imported in some format, with a pipeline of build stages.
Revisions are immutable snapshots of the sources of a workspace.

Datasets are referred to by revpaths, such as:
  path/to/workspace@HEAD:source.stage
  revision:source
  source
  path/to/dataset:format
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l, err := dlogger.GetLogger(datarevFlags.root.logLevel, dlogger.Console(true))
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		logger = l
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	config *CLIConfig
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
	addWorkspaceFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("loglevel", dlogger.LogLevelInfo)
	viper.SetDefault("project", "")
	viper.SetDefault("contributor.name", "")
	viper.SetDefault("contributor.email", "")
	if os.Getenv("DATAREV_CONFIG") != "" {
		// Use config file from the env.
		viper.SetConfigFile(os.Getenv("DATAREV_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.datarev")
		viper.AddConfigPath("/etc/datarev")
		viper.SetConfigName("datarev")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
		return
	}
	config.setDatarevParams(rootCmd.PersistentFlags(), &datarevFlags)
}
