//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// BenchOutput is the JSON-serializable result of a multi-problem solve.
type BenchOutput struct {
	Date    string          `json:"date"`
	Workers int             `json:"workers"`
	Results []ProblemResult `json:"results"`
	TotalMs int64           `json:"totalMs"`
}

func printTable(w io.Writer, results []ProblemResult, totalMs int64) {
	fmt.Fprintf(w, "%-16s %16s %16s %6s %8s\n", "Problem", "Score", "Previous", "Valid", "Time")
	fmt.Fprintf(w, "%-16s %16s %16s %6s %8s\n", "----------------", "----------------", "----------------", "------", "--------")
	var total int64
	for _, r := range results {
		mark := ""
		if r.Improved {
			mark = " *"
		}
		if r.Valid {
			total += max(r.Score, r.PrevScore)
		} else {
			total += r.PrevScore
		}
		fmt.Fprintf(w, "%-16s %16s %16s %6v %7.1fs%s\n", r.ProblemID,
			humanize.Comma(r.Score), humanize.Comma(r.PrevScore), r.Valid, float64(r.TimeMs)/1000, mark)
	}
	fmt.Fprintf(w, "%-16s %16s %16s %6s %8s\n", "----------------", "----------------", "----------------", "------", "--------")
	fmt.Fprintf(w, "%-16s %16s %16s %6s %7.1fs\n", "BEST TOTAL", humanize.Comma(total), "", "", float64(totalMs)/1000)
}

type solveFlags struct {
	configPath   string
	seed         int64
	steps        int
	dbPath       string
	solutionsDir string
	jsonOut      bool
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve <problem.json>...",
		Short: "Search a placement for each problem and keep it if it beats the stored best",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if f.configPath != "" {
				var err error
				if cfg, err = LoadConfig(f.configPath); err != nil {
					return err
				}
			}
			if f.seed != 0 {
				cfg.Seed = f.seed
			}
			if f.steps > 0 {
				cfg.StepCount = f.steps
			}

			if err := os.MkdirAll(f.solutionsDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", f.solutionsDir, err)
			}
			store, err := OpenStore(f.dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			var results []ProblemResult
			var totalMs int64
			for i, path := range args {
				fmt.Fprintf(logw(), "[%d/%d] %s ...\n", i+1, len(args), path)
				p, err := LoadProblem(path)
				if err != nil {
					return err
				}
				pr, res, err := runProblem(p, problemID(path), cfg)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := keepIfBetter(ctx, store, f.solutionsDir, &pr, res.Placement); err != nil {
					return err
				}
				results = append(results, pr)
				totalMs += pr.TimeMs
			}

			out := cmd.OutOrStdout()
			if f.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(BenchOutput{
					Date:    time.Now().UTC().Format(time.RFC3339),
					Workers: runtime.GOMAXPROCS(0),
					Results: results,
					TotalMs: totalMs,
				})
			}
			printTable(out, results, totalMs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML search configuration")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "RNG seed (0 = time based)")
	cmd.Flags().IntVar(&f.steps, "steps", 0, "Override step_count")
	cmd.Flags().StringVar(&f.dbPath, "db", "solutions/meta.db", "Solution metadata database")
	cmd.Flags().StringVar(&f.solutionsDir, "solutions-dir", "solutions", "Directory for solution files")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Output results as JSON")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "score <problem.json> <solution.json>",
		Short: "Compute the exact score and validity of a solution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := LoadProblem(args[0])
			if err != nil {
				return err
			}
			pl, err := LoadSolution(args[1], p.NumMusicians())
			if err != nil {
				return err
			}
			d, err := CalcPlacementDetail(p, pl)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"score": d.Score, "valid": d.Valid})
			}
			fmt.Fprint(out, FormatDetail(d))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output score and validity as JSON")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "concert-optimizer",
		Short:         "Place musicians on a stage to maximize the audience's listening score",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			Verbose, _ = cmd.Flags().GetBool("verbose")
		},
	}
	root.PersistentFlags().Bool("verbose", false, "Print detailed search progress to stderr")
	root.AddCommand(newSolveCmd(), newScoreCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
