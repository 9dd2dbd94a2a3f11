// Package app wires configuration, plans and the segment engine into the
// linefix command line.
package app

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags
var Version = "dev"

type options struct {
	configPath string
	verbose    bool
}

// Execute runs the root command and exits 1 on any failure
func Execute() {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the linefix command tree writing results to out and
// logs to errOut
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "linefix",
		Short: "Move misplaced line segments of a TypeScript file back into place",
		Long: titleStyle.Render("linefix") + `

linefix repairs a source file by locating marker lines, cutting the file into
named segments and reassembling them in order. The target file and the plan
to apply come from linefix.toml or linefix.yaml in the working directory.

Examples:
  linefix            Apply the configured plan to the target file
  linefix markers    Show where each marker resolves without writing
  linefix plans      List the built-in plans`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newRunner(opts, out, errOut).apply(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file to read (default is ./linefix.toml or ./linefix.yaml); the target is only ever set inside it")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newMarkersCommand(opts, out, errOut))
	root.AddCommand(newPlansCommand(out))

	return root
}

func newMarkersCommand(opts *options, out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "markers",
		Short: "Print the resolved marker lines without modifying the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newRunner(opts, out, errOut).markers(cmd.Context())
		},
	}
}

func newPlansCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the built-in plans",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listPlans(out)
		},
	}
}
