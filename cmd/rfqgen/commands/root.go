package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version    = "dev"
	configFile string
	schemaPath string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rfqgen",
	Short: "Schema-driven RFQ data toolkit",
	Long: `rfqgen works with schema-defined RFQ documents: validate a data
snapshot against its schema, export and import YAML snapshots (with optional
redaction of sensitive fields), generate LLM fill-in prompts, and fill a
schema interactively.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, printing the error cobra swallowed.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ~/.rfqgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "path to the schema YAML")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".rfqgen")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("RFQGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile != "" {
			fmt.Fprintln(os.Stderr, "Warning: cannot read config:", err)
		}
	}
}

// SetVersion sets the version for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// resolvedSchemaPath returns the schema path from the flag, falling back to
// the RFQGEN_SCHEMA environment variable or the config file's schema key.
func resolvedSchemaPath() (string, error) {
	if schemaPath != "" {
		return schemaPath, nil
	}
	if fromConfig := viper.GetString("schema"); fromConfig != "" {
		return fromConfig, nil
	}
	return "", errors.New("no schema given: use --schema, RFQGEN_SCHEMA, or the config file")
}

// verboseLog prints a message only if verbose mode is enabled.
func verboseLog(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
