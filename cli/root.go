package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/usvc/go-config"
)

const envPrefix = "GQLBEE"

// NewRootCommand builds the command tree writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "gqlbee",
		Short:         "flatten GraphQL responses into tables",
		Long:          `Turns the rows of a GraphQL response into a table and prints or exports it as csv, excel, json, html or markdown.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gqlbee.yaml)")

	rootCmd.AddCommand(
		newFlattenCommand(&cfgFile),
		newQueryCommand(&cfgFile),
	)

	return rootCmd
}

// Execute runs the command line and exits with 1 on failure
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bindConfig applies conf to the command and returns a viper instance
// that reads flags, then environment (GQLBEE_*), then the config file.
func bindConfig(cmd *cobra.Command, conf config.Map, cfgFile *string) func() (*viper.Viper, error) {
	conf.ApplyToCobra(cmd)

	return func() (*viper.Viper, error) {
		v := viper.New()

		for key := range conf {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
				return nil, fmt.Errorf("v.BindPFlag: %w", err)
			}
		}

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()

		if *cfgFile != "" {
			v.SetConfigFile(*cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("v.ReadInConfig: %w", err)
			}
			return v, nil
		}

		home, err := homedir.Dir()
		if err != nil {
			return v, nil
		}

		v.AddConfigPath(home)
		v.SetConfigName(".gqlbee")
		// a missing default config file is fine
		_ = v.ReadInConfig()

		return v, nil
	}
}
