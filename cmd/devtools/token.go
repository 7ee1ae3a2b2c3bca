package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vezinbastien/devtools/internal/token"
)

var (
	flagLength    int
	flagUppercase bool
	flagLowercase bool
	flagNumbers   bool
	flagSymbols   bool
	flagUUID      bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a random token",
	Long:  "Generate a random token. Flags override the token block of the config file.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.IntVarP(&flagLength, "length", "n", token.DefaultOptions().Length, fmt.Sprintf("token length (%d-%d)", token.MinLength, token.MaxLength))
	f.BoolVar(&flagUppercase, "uppercase", true, "include A-Z")
	f.BoolVar(&flagLowercase, "lowercase", true, "include a-z")
	f.BoolVar(&flagNumbers, "numbers", true, "include 0-9")
	f.BoolVar(&flagSymbols, "symbols", false, "include punctuation")
	f.BoolVar(&flagUUID, "uuid", false, "print a random UUID instead")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if flagUUID {
		fmt.Fprintln(cmd.OutOrStdout(), token.UUID())
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.Token
	flags := cmd.Flags()
	if flags.Changed("length") {
		opts.Length = flagLength
	}
	if flags.Changed("uppercase") {
		opts.Uppercase = flagUppercase
	}
	if flags.Changed("lowercase") {
		opts.Lowercase = flagLowercase
	}
	if flags.Changed("numbers") {
		opts.Numbers = flagNumbers
	}
	if flags.Changed("symbols") {
		opts.Symbols = flagSymbols
	}

	tok, err := token.Generate(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
