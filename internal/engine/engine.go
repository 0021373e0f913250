// Package engine runs the enabled checkers over parsed files and aggregates
// violations.
//
// Files are independent and processed in parallel; the registry and the
// effective configuration are read-only for the duration of a run and shared
// across workers without synchronization. Checkers that accumulate run-wide
// state are finalized single-threaded after every file has been processed.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"ferrolint/internal/checker"
	"ferrolint/internal/config"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// CheckerError records a checker that panicked on a file. The run continues
// with the remaining checkers and files.
type CheckerError struct {
	Code   string `json:"code"`
	File   string `json:"file"`
	Detail string `json:"detail"`
}

// ParseFailure records a file the parser could not handle. The file is
// skipped and the run continues.
type ParseFailure struct {
	File   string `json:"file"`
	Detail string `json:"detail"`
}

// Result is the aggregated outcome of one run. Violations are ordered by
// source position within a file and by input order across files, so an
// unchanged input yields a byte-identical result.
type Result struct {
	Violations    []checker.Violation
	CheckerErrors []CheckerError
	ParseFailures []ParseFailure
}

// Engine iterates input files and dispatches enabled checkers over each
// file's syntax tree.
type Engine struct {
	reg     *registry.Registry
	eff     *config.Effective
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of files processed concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New builds an engine over a registry and a resolved configuration.
func New(reg *registry.Registry, eff *config.Effective, opts ...Option) *Engine {
	e := &Engine{reg: reg, eff: eff, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// instance pairs a live checker with its effective config for this run.
type instance struct {
	chk checker.Checker
	cfg checker.Config
}

// RunFiles analyzes the given files in input order. Parse failures and
// checker panics are recorded in the result, never returned as an error; a
// run always completes.
func (e *Engine) RunFiles(ctx context.Context, files []string) (*Result, error) {
	instances := e.instantiate()

	type fileOutcome struct {
		violations []checker.Violation
		errors     []CheckerError
		parseFail  *ParseFailure
	}
	outcomes := make([]fileOutcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			f, err := syntax.ParseFile(ctx, path)
			if err != nil {
				outcomes[i].parseFail = &ParseFailure{File: path, Detail: err.Error()}
				return nil
			}
			defer f.Close()

			violations, errs := e.analyzeFile(f, instances)
			outcomes[i] = fileOutcome{violations: violations, errors: errs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stitch per-file results back together in input order.
	result := &Result{}
	for _, out := range outcomes {
		result.Violations = append(result.Violations, out.violations...)
		result.CheckerErrors = append(result.CheckerErrors, out.errors...)
		if out.parseFail != nil {
			result.ParseFailures = append(result.ParseFailures, *out.parseFail)
		}
	}

	// Phase 2: run-wide checkers emit their cross-file violations.
	result.Violations = append(result.Violations, e.finish(instances, result)...)

	return result, nil
}

// Run walks the given paths (files or directories), collects Rust sources
// and analyzes them. Directory entries are visited in deterministic order.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	return e.RunFiles(ctx, files)
}

// instantiate creates one live checker per enabled registry entry, in
// registration order.
func (e *Engine) instantiate() []instance {
	var instances []instance
	for _, entry := range e.reg.All() {
		cfg := e.eff.For(entry.Meta.Code)
		if !cfg.Enabled {
			continue
		}
		instances = append(instances, instance{chk: entry.New(), cfg: cfg})
	}
	return instances
}

// analyzeFile runs every applicable checker over one file's tree. A checker
// is applicable when its node kinds intersect the kinds present in the tree.
func (e *Engine) analyzeFile(f *syntax.File, instances []instance) ([]checker.Violation, []CheckerError) {
	var violations []checker.Violation
	var errs []CheckerError

	for _, inst := range instances {
		meta := inst.chk.Metadata()

		var nodes []*sitter.Node
		for _, kind := range meta.NodeKinds {
			nodes = append(nodes, f.NodesOfKind(kind)...)
		}
		if len(nodes) == 0 {
			continue
		}

		found, err := e.checkNodes(inst, nodes, f)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		violations = append(violations, found...)
	}

	sortViolations(violations)
	return violations, errs
}

// checkNodes invokes one checker over its matching nodes, isolating panics
// so one misbehaving checker never aborts the scan of a file.
func (e *Engine) checkNodes(inst instance, nodes []*sitter.Node, f *syntax.File) (found []checker.Violation, cerr *CheckerError) {
	meta := inst.chk.Metadata()
	defer func() {
		if r := recover(); r != nil {
			cerr = &CheckerError{
				Code:   meta.Code,
				File:   f.Path,
				Detail: fmt.Sprintf("checker panicked: %v", r),
			}
			found = nil
		}
	}()

	for _, n := range nodes {
		for _, v := range inst.chk.Check(n, f, &inst.cfg) {
			// Checkers reason about detection only; the user-configured
			// severity always wins.
			v.Severity = inst.cfg.Severity
			found = append(found, v)
		}
	}
	return found, nil
}

// finish runs phase 2 for checkers that accumulate state across the run.
func (e *Engine) finish(instances []instance, result *Result) []checker.Violation {
	var violations []checker.Violation
	for _, inst := range instances {
		rc, ok := inst.chk.(checker.RunChecker)
		if !ok {
			continue
		}
		found, err := finishChecker(rc)
		if err != nil {
			result.CheckerErrors = append(result.CheckerErrors, *err)
			continue
		}
		for _, v := range found {
			v.Severity = inst.cfg.Severity
			violations = append(violations, v)
		}
	}
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})
	return violations
}

func finishChecker(rc checker.RunChecker) (found []checker.Violation, cerr *CheckerError) {
	defer func() {
		if r := recover(); r != nil {
			cerr = &CheckerError{
				Code:   rc.Metadata().Code,
				Detail: fmt.Sprintf("checker panicked during finish: %v", r),
			}
			found = nil
		}
	}()
	return rc.Finish(), nil
}

// sortViolations orders one file's violations by source position, then code,
// so repeated runs over an unchanged tree are byte-identical.
func sortViolations(violations []checker.Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Code < b.Code
	})
}
