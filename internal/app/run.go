package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/evanrichards/line-fixer-ts/internal/config"
	"github.com/evanrichards/line-fixer-ts/internal/fileutil"
	"github.com/evanrichards/line-fixer-ts/internal/plans"
	"github.com/evanrichards/line-fixer-ts/internal/report"
	"github.com/evanrichards/line-fixer-ts/internal/segment"
)

type runner struct {
	opts   *options
	out    io.Writer
	logger *log.Logger
}

// job is everything needed to run a plan against the target
type job struct {
	cfg   *config.Config
	lines []string
	perm  os.FileMode
	plan  segment.Plan
}

func newRunner(opts *options, out, errOut io.Writer) *runner {
	logger := log.NewWithOptions(errOut, log.Options{
		Prefix: "linefix",
	})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &runner{opts: opts, out: out, logger: logger}
}

func (r *runner) prepare(ctx context.Context) (*job, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Load(r.opts.configPath, dir)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		r.logger.Debug("loaded config", "path", cfg.Source)
	} else {
		r.logger.Debug("no config file found, using defaults")
	}

	def, err := loadDefinition(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Indent != "" {
		def.Indent = cfg.Indent
	}
	r.logger.Debug("using plan", "name", def.Name, "target", cfg.Target)

	lines, perm, err := fileutil.ReadLines(cfg.Target)
	if err != nil {
		return nil, err
	}

	ctx = log.WithContext(ctx, r.logger)
	plan, err := plans.Compile(ctx, def, plans.Document{Path: cfg.Target, Lines: lines})
	if err != nil {
		return nil, err
	}

	return &job{cfg: cfg, lines: lines, perm: perm, plan: plan}, nil
}

func loadDefinition(cfg *config.Config) (plans.Definition, error) {
	if cfg.PlanFile != "" {
		return plans.LoadFile(cfg.PlanFile)
	}
	return plans.Builtin(cfg.Plan)
}

// apply runs the plan and overwrites the target. Nothing is written unless
// every step succeeds.
func (r *runner) apply(ctx context.Context) error {
	j, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	result, err := segment.ReorderAndFix(j.lines, j.plan)
	if err != nil {
		return fmt.Errorf("%s: %w", j.cfg.Target, err)
	}

	for _, p := range result.Markers {
		r.logger.Info("marker", "name", p.Name, "line", p.Line())
	}
	for _, name := range result.Replaced {
		r.logger.Info("replaced block", "name", name)
	}

	target := filepath.Base(j.cfg.Target)
	if result.Unchanged {
		fmt.Fprintf(r.out, "%s %s\n", mutedStyle.Render("No changes needed"), target)
		return nil
	}

	if err := fileutil.WriteLines(j.cfg.Target, result.Lines, j.perm); err != nil {
		return err
	}

	summary := report.Summarize(j.lines, result.Lines)
	fmt.Fprintf(r.out, "%s %s (%s)\n", successStyle.Render("✓ Fixed"), target, summary)
	return nil
}

// markers resolves the plan's markers and prints them without writing
func (r *runner) markers(ctx context.Context) error {
	j, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	positions, err := segment.Resolve(j.lines, j.plan)
	if err != nil {
		return fmt.Errorf("%s: %w", j.cfg.Target, err)
	}

	fmt.Fprintf(r.out, "%s %s\n", titleStyle.Render(j.plan.Name), mutedStyle.Render(j.cfg.Target))
	for _, p := range positions {
		fmt.Fprintf(r.out, "  %-24s line %d\n", p.Name, p.Line())
	}
	return nil
}

func listPlans(out io.Writer) error {
	defs, err := plans.Builtins()
	if err != nil {
		return err
	}
	for _, def := range defs {
		fmt.Fprintf(out, "%s\n  %s\n", nameStyle.Render(def.Name), mutedStyle.Render(def.Description))
	}
	return nil
}
