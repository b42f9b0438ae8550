package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/objstrip/deadstrip/cmd/strip"
)

var cfgFile string

var errColor = color.New(color.FgRed, color.Bold)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "deadstrip",
	Short: "Remove unreachable sections from object files before linking",
	Long: `deadstrip analyzes the relocations between the sections of a set of
object files, determines which sections are unreachable from a seed symbol
(main by default), and removes them before handing the files to the linker.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deadstrip.yaml)")
	RootCmd.AddCommand(strip.Cmd)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".deadstrip")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
