package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/vezinbastien/devtools"
)

const configEnv = "DEVTOOLS_CONFIG"

var (
	flagConfig  string
	flagVerbose int
	version     = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "devtools",
	Short:   "Convert colors between formats, generate tokens and render palettes",
	Version: version,
	// Usage on every RunE error hides the actual message.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commonlog.Configure(flagVerbose, nil)
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config HCL file (default $"+configEnv+" or "+devtools.DefaultConfigPath+")")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config, then $DEVTOOLS_CONFIG,
// then the default path. Only a missing default file falls back to the
// built-in defaults; an explicitly named file must exist.
func loadConfig() (*devtools.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(configEnv)
	}
	explicit := path != ""
	if !explicit {
		path = devtools.DefaultConfigPath
	}

	cfg, err := devtools.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return devtools.Defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
