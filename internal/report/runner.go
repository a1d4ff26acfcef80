package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// reportCategories are the category subdirectories that feed the report.
var reportCategories = []api.Category{api.CategoryTravel, api.CategoryFood}

// Summary tallies a batch run.
type Summary struct {
	Processed int
	Skipped   int
}

// document is one unit of work for the pool.
type document struct {
	Path     string
	Category api.Category
}

// result is what a worker hands back to the consumer. Workers never touch
// shared state; the consumer alone folds results into the day-indexed map.
type result struct {
	Doc   document
	Entry *api.Entry
	Err   error
}

// Runner fans the sorted documents out to the Processor, sequentially or
// via a bounded worker pool, and folds the outcomes into a date-indexed
// collection. A single document failure is counted and logged, never fatal.
type Runner struct {
	Proc     *Processor
	Parallel bool
	Workers  int
	Logger   *slog.Logger
}

// Run processes every PDF under sortedDir's Travel/ and Food/
// subdirectories and returns the entries grouped by date. Scheduling mode
// does not affect the result: the fold is commutative and the final report
// is sorted downstream.
func (r *Runner) Run(ctx context.Context, sortedDir string) (map[string][]*api.Entry, Summary, error) {
	docs, err := r.enumerate(sortedDir)
	if err != nil {
		return nil, Summary{}, err
	}

	byDate := make(map[string][]*api.Entry)
	var summary Summary

	fold := func(res result) {
		if res.Err != nil {
			summary.Skipped++
			r.logger().Warn("skipping file", "file", res.Doc.Path, "reason", res.Err)
			return
		}
		byDate[res.Entry.Date] = append(byDate[res.Entry.Date], res.Entry)
		summary.Processed++
	}

	if r.Parallel && r.Workers > 1 {
		for res := range r.runPool(ctx, docs) {
			fold(res)
		}
	} else {
		for _, doc := range docs {
			fold(r.processOne(ctx, doc))
		}
	}

	return byDate, summary, nil
}

// enumerate lists the PDF documents of each category in directory-listing
// order. A missing category directory is not an error; non-PDF files are
// ignored.
func (r *Runner) enumerate(sortedDir string) ([]document, error) {
	var docs []document
	for _, category := range reportCategories {
		dir := filepath.Join(sortedDir, string(category))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				continue
			}
			docs = append(docs, document{
				Path:     filepath.Join(dir, entry.Name()),
				Category: category,
			})
		}
	}
	return docs, nil
}

// runPool processes docs on a fixed-size worker pool. Workers return pure
// results over a channel; completion order is nondeterministic.
func (r *Runner) runPool(ctx context.Context, docs []document) <-chan result {
	jobs := make(chan document)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				results <- r.processOne(ctx, doc)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, doc := range docs {
			jobs <- doc
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// processOne isolates a single document: a panicking collaborator is
// downgraded to a per-document error so one bad file cannot take the pool
// down.
func (r *Runner) processOne(ctx context.Context, doc document) (res result) {
	res.Doc = doc
	defer func() {
		if rec := recover(); rec != nil {
			res.Entry = nil
			res.Err = fmt.Errorf("processing panic: %v", rec)
		}
	}()
	res.Entry, res.Err = r.Proc.Process(ctx, doc.Path, doc.Category)
	return res
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
