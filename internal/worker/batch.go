package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sorgerlab/indra-sub002/internal/model"
)

// Runner defines the interface for preassembling one corpus file
type Runner interface {
	PreassembleFile(ctx context.Context, path string) (*model.Result, error)
}

// CorpusJob represents a single corpus-file preassembly job
type CorpusJob struct {
	Path   string
	Runner Runner
}

// Execute executes the corpus job
func (j *CorpusJob) Execute(ctx context.Context) Result {
	result, err := j.Runner.PreassembleFile(ctx, j.Path)
	if err != nil {
		return &CorpusResult{
			Path:   j.Path,
			Result: nil,
			Error:  err,
		}
	}
	return &CorpusResult{
		Path:   j.Path,
		Result: result,
		Error:  nil,
	}
}

// CorpusResult represents the result of preassembling one corpus file
type CorpusResult struct {
	Path   string
	Result *model.Result
	Error  error
}

// GetError returns the error from the corpus result
func (r *CorpusResult) GetError() error {
	return r.Error
}

// BatchProcessor preassembles multiple corpus files concurrently. Each file
// is an independent corpus, so files parallelize freely; within a file the
// runner applies its own per-type parallelism.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessPaths preassembles multiple corpus files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CorpusResult {
	if len(paths) == 0 {
		return []*CorpusResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		job := &CorpusJob{
			Path:   path,
			Runner: b.runner,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	corpusResults := make([]*CorpusResult, len(results))
	for i, result := range results {
		corpusResults[i] = result.(*CorpusResult)
	}

	return corpusResults
}

// ProcessFile reads corpus paths from a list file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CorpusResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads corpus file paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
