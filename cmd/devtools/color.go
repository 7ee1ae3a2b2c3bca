package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/session"
)

var flagFrom string

var colorCmd = &cobra.Command{
	Use:   "color [value]",
	Short: "Show a color in HEX, RGBA, HSL, CMYK and HSV",
	Long: `Show a color in every supported format.

The format of value is detected from its prefix (#, rgb, hsl, cmyk, hsv)
or resolved as a CSS color name. Use --from to force one parser. Without
a value the configured default color is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColor,
}

func init() {
	colorCmd.Flags().StringVar(&flagFrom, "from", "", "parse value as this format (hex, rgba, hsl, cmyk, hsv)")
	rootCmd.AddCommand(colorCmd)
}

func runColor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := session.NewColor(cfg.DefaultColor)
	if len(args) == 1 {
		if err := applyColor(s, flagFrom, args[0]); err != nil {
			return err
		}
	}

	printViews(cmd.OutOrStdout(), s.Views())
	return nil
}

// applyColor edits s with value. An explicit format goes straight to its
// parser; otherwise the format is detected.
func applyColor(s *session.Session, from, value string) error {
	if from != "" {
		f, err := color.ParseFormat(from)
		if err != nil {
			return err
		}
		return s.Set(f, value)
	}

	c, f, err := color.Detect(value)
	if err != nil {
		return err
	}
	if f == color.FormatRGBA {
		s.SetRGBA(value)
		return nil
	}
	// Names detect as HEX but only the resolved value parses as one.
	return s.SetHex(c.Hex())
}

func printViews(w io.Writer, v color.Views) {
	for _, f := range color.Formats {
		fmt.Fprintf(w, "%-5s %s\n", f, v.Get(f))
	}
}
