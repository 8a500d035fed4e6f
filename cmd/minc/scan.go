package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	minlang "go.minlang.dev/pkg"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Dump the token stream of a source file",
	Long: `scan prints every token the scanner produces, one per line with
its kind, lexeme, and position. Malformed lexical content shows up as
INVALID tokens; the scanner itself never fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tok := range minlang.Scan(string(data)) {
		line := tok.String()
		if tok.Typ == minlang.TokenInvalid {
			line = errStyle.Render(line)
		}

		fmt.Fprintln(out, line)
	}

	return nil
}
