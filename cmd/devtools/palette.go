package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/engine"
)

var (
	flagOut       string
	flagTemplates string
	flagApp       []string
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the configured palette in every format",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates against the configured palette",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "generate only for specific apps (can be repeated)")
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(generateCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	entries := cfg.Palette.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "palette is empty")
		return nil
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, e.Name)
		for _, f := range color.Formats {
			fmt.Fprintf(w, "  %-5s %s\n", f, e.Views.Get(f))
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Apps:         flagApp,
	}

	palette := engine.Palette{
		Names:  cfg.Palette.Names,
		Colors: cfg.Palette.Colors,
	}
	if err := e.Run(palette); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated files in %s\n", flagOut)
	return nil
}
