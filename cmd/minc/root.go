package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "minc",
	Short: "Compiler front end for the min language",
	Long: `minc scans, parses, and type-checks min source files.

It builds a type-annotated AST and the chain of lexical scopes for each
source unit. There is no code generation: the front end stops after
semantic validation and dumps its data structures for inspection.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
