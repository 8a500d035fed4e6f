package main

import (
	"fmt"

	"github.com/spf13/cobra"

	minlang "go.minlang.dev/pkg"
)

var (
	parseSymbols bool
	parseTrace   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse and type-check a source file",
	Long: `parse runs the full front end on one file and prints the typed
AST. On a fault it prints the single positioned diagnostic and exits
non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseSymbols, "symbols", "s", false, "print the symbol table of every scope")
	parseCmd.Flags().BoolVarP(&parseTrace, "trace", "t", false, "print the production-rule trace")
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := minlang.NewCompiler().Compile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("AST"))
	fmt.Fprintln(out, minlang.Dump(result.Program))

	if parseSymbols {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Symbol tables"))
		for _, scope := range result.Scopes {
			fmt.Fprintln(out, scope.Pretty())
			fmt.Fprintln(out)
		}
	}

	if parseTrace {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Productions"))
		for _, production := range result.Productions {
			fmt.Fprintln(out, mutedStyle.Render(production))
		}
	}

	return nil
}
