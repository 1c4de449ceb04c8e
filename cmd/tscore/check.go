package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"tscore/internal/config"
	"tscore/internal/diag"
	"tscore/internal/glue"
	"tscore/internal/source"
)

// fileResult is one fixture file's outcome: the display form of its root
// type plus whatever diagnostics the glue layer reported while lowering it.
type fileResult struct {
	path        string
	display     string
	diagnostics []*diag.Diagnostic
	err         error
}

func newCheckCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check <fixture.toml>...",
		Short: "Lower and evaluate each fixture's root type, reporting diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML budgets config (defaults to the spec's own constants)")
	return cmd
}

// runCheck processes every fixture file concurrently — each gets its own
// Interner and Compiler, since a Compiler is not safe for concurrent use by
// multiple compilations (spec §5: one interner per compilation unit).
func runCheck(paths []string, configPath string) error {
	budgets := config.Default()
	if configPath != "" {
		var err error
		budgets, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	results := make([]fileResult, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = checkOne(path, budgets)
			return nil
		})
	}
	_ = g.Wait() // per-file errors are carried in fileResult, not propagated

	anyErrors := false
	for _, r := range results {
		printResult(r)
		if r.err != nil || hasErrorSeverity(r.diagnostics) {
			anyErrors = true
		}
	}
	if anyErrors {
		os.Exit(1)
	}
	return nil
}

func hasErrorSeverity(diags []*diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func checkOne(path string, budgets config.Budgets) fileResult {
	spec, err := loadFixture(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	strings := source.NewInterner()
	builder := newFixtureBuilder(spec, strings)
	if err := builder.build(); err != nil {
		return fileResult{path: path, err: err}
	}

	bag := diag.NewBag(256)
	compiler := glue.NewWithBudgets(nil, diag.BagReporter{Bag: bag}, budgets)
	compiler.Interner.Strings = strings // share the atom table the fixture was built with
	compiler.Resolver = wireAliases(compiler, builder)

	rootIdx, err := builder.node(spec.Root)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	result := compiler.LowerType(builder.tree, rootIdx)
	return fileResult{
		path:        path,
		display:     compiler.Interner.Display(result),
		diagnostics: bag.Items(),
	}
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	okColor   = color.New(color.FgGreen, color.Bold)
	pathStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func printResult(r fileResult) {
	width := termWidth()
	box := lipgloss.NewStyle().Width(width).Padding(0, 1)

	fmt.Println(pathStyle.Render(r.path))
	if r.err != nil {
		fmt.Println(box.Render(errColor.Sprintf("fixture error: %v", r.err)))
		return
	}
	fmt.Println(box.Render("=> " + r.display))
	for _, d := range r.diagnostics {
		switch d.Severity {
		case diag.SevError:
			fmt.Println(box.Render(errColor.Sprintf("error[%s]: %s", d.Code.ID(), d.Message)))
		case diag.SevWarning:
			fmt.Println(box.Render(warnColor.Sprintf("warning[%s]: %s", d.Code.ID(), d.Message)))
		default:
			fmt.Println(box.Render(fmt.Sprintf("info[%s]: %s", d.Code.ID(), d.Message)))
		}
	}
	if len(r.diagnostics) == 0 {
		fmt.Println(box.Render(okColor.Sprint("ok")))
	}
}

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}
