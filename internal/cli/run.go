package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"partsync/internal/domain"
	"partsync/internal/export"
	"partsync/internal/metrics"
	"partsync/internal/property"
	"partsync/internal/reconcile"
	"partsync/internal/service"
)

// errConflicts is returned by run --fail-on-conflict when any job has a conflict.
var errConflicts = errors.New("conflicts found")

type runOptions struct {
	concurrency    int
	sheetDir       string
	failOnConflict bool
	out            string
}

// JobResult is the printed outcome of one job.
type JobResult struct {
	Name        string                  `json:"name"`
	Source      string                  `json:"source"`
	Kind        domain.DocumentKind     `json:"kind"`
	Summary     string                  `json:"summary"`
	Result      *reconcile.Result       `json:"result"`
	Suggestions *property.SuggestionSet `json:"suggestions"`
	SheetPath   string                  `json:"sheet_path,omitempty"`
}

func newRunCommand(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run JOB_FILE...",
		Short: "Reconcile every job in the given files",
		Example: `  partsync-reconcile run jobs/100-200.yaml
  partsync-reconcile run --concurrency 8 --sheet-dir sheets/ jobs/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := LoadJobs(args)
			if err != nil {
				return err
			}
			reconciler := service.NewReconciler(
				reconcile.NewEngine(reconcile.TablesFromConfig(&a.cfg.Reconcile)),
				property.NewMapper(property.DefaultsFromConfig(&a.cfg.Routing)),
			)

			out := cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return runJobs(cmd.Context(), reconciler, jobs, opts, out, a.logger)
		},
	}
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 4, "number of jobs evaluated in parallel")
	cmd.Flags().StringVar(&opts.sheetDir, "sheet-dir", "", "write an XLSX review sheet per job into this directory")
	cmd.Flags().BoolVar(&opts.failOnConflict, "fail-on-conflict", false, "exit non-zero when any job has a conflict")
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "write JSON results to this file instead of stdout")
	return cmd
}

// runJobs evaluates jobs concurrently and prints the results as a JSON array in job order.
func runJobs(ctx context.Context, r *service.Reconciler, jobs []Job, opts *runOptions, out io.Writer, logger *zap.Logger) error {
	if opts.sheetDir != "" {
		if err := os.MkdirAll(opts.sheetDir, 0o755); err != nil {
			return fmt.Errorf("creating sheet directory: %w", err)
		}
	}

	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := evaluateJob(r, job, opts.sheetDir)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			results[i] = *res
			logger.Info("job reconciled",
				zap.String("job", job.Name),
				zap.String("summary", res.Summary),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if opts.failOnConflict {
		for _, res := range results {
			if res.Result.HasConflicts() {
				return errConflicts
			}
		}
	}
	return nil
}

func evaluateJob(r *service.Reconciler, job *Job, sheetDir string) (*JobResult, error) {
	start := time.Now()
	eval, err := r.Evaluate(job.input())
	if err != nil {
		return nil, err
	}
	metrics.RecordRun(eval.Kind, "cli", eval.Result, eval.Suggestions, time.Since(start))

	res := &JobResult{
		Name:        job.Name,
		Source:      job.Source,
		Kind:        eval.Kind,
		Summary:     eval.Summary,
		Result:      eval.Result,
		Suggestions: eval.Suggestions,
	}
	if sheetDir != "" {
		path, err := writeSheet(job, eval, sheetDir)
		if err != nil {
			return nil, err
		}
		res.SheetPath = path
	}
	return res, nil
}

func writeSheet(job *Job, eval *service.Evaluation, dir string) (string, error) {
	sheet := &export.ReviewSheet{
		RunID:       uuid.New(),
		Kind:        eval.Kind,
		PartNumber:  job.partNumber(),
		Status:      domain.RunStatusPendingReview,
		Summary:     eval.Summary,
		CreatedAt:   time.Now(),
		Result:      eval.Result,
		Suggestions: eval.Suggestions.Suggestions,
		Unassigned:  eval.Suggestions.Unassigned,
	}
	if job.Part != nil {
		sheet.FilePath = job.Part.FilePath
	}
	name := export.SanitizeFilename(job.Name) + ".xlsx"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating review sheet: %w", err)
	}
	defer f.Close()
	if err := export.WriteXLSX(f, sheet); err != nil {
		return "", fmt.Errorf("writing review sheet: %w", err)
	}
	return path, nil
}
