package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	minlang "go.minlang.dev/pkg"
)

// manifest declares the sample suites of a directory. Without one the
// directory is expected to hold a valid/ and an invalid/ subdirectory.
type manifest struct {
	Suites []suite `yaml:"suites"`
}

type suite struct {
	Name          string `yaml:"name"`
	Dir           string `yaml:"dir"`
	Expect        string `yaml:"expect"`
	ErrorContains string `yaml:"error_contains"`
}

var defaultSuites = []suite{
	{Name: "valid", Dir: "valid", Expect: "pass"},
	{Name: "invalid", Dir: "invalid", Expect: "fail"},
}

var testVerbose bool

var testCmd = &cobra.Command{
	Use:   "test [dir]",
	Short: "Run the sample suites of a directory",
	Long: `test compiles every .min file in the directory's suites and checks
the outcome against the suite's expectation. A pass suite must compile
cleanly; a fail suite must produce a diagnostic, optionally containing a
declared substring. Suites come from a manifest.yaml in the directory,
or default to valid/ and invalid/ subdirectories.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().BoolVarP(&testVerbose, "verbose", "v", false, "print the symbol tables and AST of passing samples")
}

func runTest(cmd *cobra.Command, args []string) error {
	suites, err := loadSuites(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0

	for _, s := range suites {
		passed, total, err := runSuite(out, args[0], s)
		if err != nil {
			return err
		}

		failed += total - passed
	}

	if failed > 0 {
		return fmt.Errorf("%d sample(s) failed", failed)
	}

	return nil
}

func loadSuites(root string) ([]suite, error) {
	data, err := os.ReadFile(filepath.Join(root, "manifest.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return defaultSuites, nil
	}

	if err != nil {
		return nil, err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest.yaml: %w", err)
	}

	if len(m.Suites) == 0 {
		return nil, errors.New("manifest.yaml: no suites declared")
	}

	return m.Suites, nil
}

func runSuite(out io.Writer, root string, s suite) (passed, total int, err error) {
	files, err := filepath.Glob(filepath.Join(root, s.Dir, "*.min"))
	if err != nil {
		return 0, 0, err
	}

	sort.Strings(files)

	fmt.Fprintln(out, headerStyle.Render("suite "+s.Name))
	for _, file := range files {
		total++
		if runSample(out, file, s) {
			passed++
		}
	}

	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%s: %d/%d passed", s.Name, passed, total)))
	return passed, total, nil
}

func runSample(out io.Writer, file string, s suite) bool {
	name := filepath.Base(file)
	result, err := minlang.NewCompiler().Compile(file)

	ok := false
	switch s.Expect {
	case "pass":
		ok = err == nil
	case "fail":
		ok = err != nil && (s.ErrorContains == "" || strings.Contains(err.Error(), s.ErrorContains))
	}

	if !ok {
		fmt.Fprintf(out, "%s %s\n", failStyle.Render("[FAIL]"), name)
		if err != nil {
			fmt.Fprintln(out, errStyle.Render("    "+err.Error()))
		} else {
			fmt.Fprintln(out, errStyle.Render("    compiled cleanly but a diagnostic was expected"))
		}

		return false
	}

	fmt.Fprintf(out, "%s %s\n", passStyle.Render("[PASS]"), name)
	if err != nil {
		fmt.Fprintln(out, mutedStyle.Render("    "+err.Error()))
	} else if testVerbose {
		for _, scope := range result.Scopes {
			fmt.Fprintln(out, mutedStyle.Render(scope.Pretty()))
		}

		fmt.Fprintln(out, mutedStyle.Render(minlang.Dump(result.Program)))
	}

	return true
}
