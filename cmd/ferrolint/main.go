package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"ferrolint/internal/baseline"
	"ferrolint/internal/checker"
	"ferrolint/internal/checkers"
	"ferrolint/internal/config"
	"ferrolint/internal/engine"
	"ferrolint/internal/registry"
	"ferrolint/internal/report"
	"ferrolint/internal/validate"
)

var (
	rootCmd = &cobra.Command{
		Use:   "ferrolint",
		Short: "Rule-based static analyzer for Rust source",
	}

	configPath string

	// run flags
	flagAll            bool
	flagInclude        []string
	flagExclude        []string
	flagSeverity       int
	flagCategories     []string
	flagFormat         string
	flagWorkers        int
	flagBaseline       string
	flagUpdateBaseline bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ferrolint.yaml", "Path to the configuration file")

	runCmd.Flags().BoolVar(&flagAll, "all", false, "Enable every checker")
	runCmd.Flags().StringSliceVar(&flagInclude, "include", nil, "Only run checkers matching these codes/prefixes")
	runCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Skip checkers matching these codes/prefixes")
	runCmd.Flags().IntVar(&flagSeverity, "severity", 0, "Minimum severity 1-3")
	runCmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Only run checkers in these categories")
	runCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Number of files analyzed concurrently (0 = all CPUs)")
	runCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Baseline database; known violations are suppressed")
	runCmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "Write the run's violations to the baseline instead of reporting them")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkersCmd)
	rootCmd.AddCommand(validateCmd)
}

// newRegistry wires the built-in rule set. External checkers would be
// registered here as well, before the run begins.
func newRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := reg.RegisterAll(checkers.All()); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildRequest() config.RunRequest {
	severity := flagSeverity
	if severity == 0 {
		if env := os.Getenv("FERROLINT_MIN_SEVERITY"); env != "" {
			if n, err := strconv.Atoi(env); err == nil {
				severity = n
			}
		}
	}
	return config.RunRequest{
		All:         flagAll,
		Include:     flagInclude,
		Exclude:     flagExclude,
		MinSeverity: checker.Severity(severity),
		Categories:  flagCategories,
	}
}

// applyBaseline updates or applies the baseline store. The store is closed
// before returning, so the caller is free to os.Exit afterwards.
func applyBaseline(result *engine.Result, path string, update bool) (updated bool, err error) {
	store, err := baseline.Open(path)
	if err != nil {
		return false, err
	}
	defer store.Close()

	if update {
		return true, store.Save(result.Violations)
	}
	result.Violations, err = store.Filter(result.Violations)
	return false, err
}

var runCmd = &cobra.Command{
	Use:   "run [path...]",
	Short: "Analyze Rust files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		doc, err := config.Load(configPath)
		if err != nil {
			return err
		}
		eff, warnings := config.Resolve(reg, doc, buildRequest())

		eng := engine.New(reg, eff, engine.WithWorkers(flagWorkers))
		result, err := eng.Run(context.Background(), args)
		if err != nil {
			return err
		}

		if flagBaseline != "" {
			updated, err := applyBaseline(result, flagBaseline, flagUpdateBaseline)
			if err != nil {
				return err
			}
			if updated {
				fmt.Fprintf(os.Stderr, "baseline updated with %d violation(s)\n", len(result.Violations))
				return nil
			}
		}

		rep := report.New(result, warnings)
		switch flagFormat {
		case "json":
			if err := rep.WriteJSON(os.Stdout); err != nil {
				return err
			}
		default:
			rep.WriteText(os.Stdout)
		}

		if len(result.Violations) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

var checkersCmd = &cobra.Command{
	Use:   "checkers",
	Short: "List registered checkers and their effective state",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		doc, err := config.Load(configPath)
		if err != nil {
			return err
		}
		eff, _ := config.Resolve(reg, doc, buildRequest())

		fmt.Printf("%-8s %-34s %-8s %-8s %s\n", "CODE", "NAME", "SEVERITY", "ENABLED", "CATEGORIES")
		for _, entry := range reg.All() {
			cfg := eff.For(entry.Meta.Code)
			fmt.Printf("%-8s %-34s %-8s %-8t %v\n",
				entry.Meta.Code, entry.Meta.Name, cfg.Severity, cfg.Enabled, cfg.Categories)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <fixtures>",
	Short: "Cross-check every checker against a labeled fixture corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		summary, err := validate.Run(context.Background(), args[0], reg)
		if err != nil {
			return err
		}
		validate.Print(os.Stdout, summary)
		if !summary.AllPassed() {
			os.Exit(1)
		}
		return nil
	},
}
