package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sorgerlab/indra-sub002/internal/pipeline"
	"github.com/sorgerlab/indra-sub002/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file-or-dir>",
	Short: "Preassemble multiple corpus files in parallel",
	Long: `Batch preassembles multiple statement corpora concurrently:
- Take corpus paths from a list file (one per line, # comments allowed)
  or every .json file in a directory
- Process corpora in parallel with a configurable worker count
- Each corpus additionally parallelizes across statement-type partitions
- Write one assembled JSON result per corpus

Example:
  preassembly batch corpora.txt --ontology bio_ontology.yaml
  preassembly batch ./corpora/ --concurrency 4 --output-dir ./assembled
  preassembly batch corpora.txt --concurrency 2 --timeout 2h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent corpus workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./preassembly-results", "output directory for assembled corpora")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 4*time.Hour, "total timeout for batch processing")

	// Engine flags shared with run
	batchCmd.Flags().StringVar(&ontologyPath, "ontology", "", "ontology snapshot file (YAML edge list)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "per-corpus worker count for large type partitions (0 = all CPUs)")
	batchCmd.Flags().IntVar(&partThreshold, "partition-threshold", 0, "minimum partition size for worker dispatch (0 = default)")
	batchCmd.Flags().BoolVar(&noClosureCache, "no-closure-cache", false, "disable ontology closure memoization")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	paths, err := collectCorpusPaths(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no corpus files found in %s", input)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch preassembly\n")
	fmt.Fprintf(os.Stderr, "  Input:       %s (%d corpora)\n", input, len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:     %v\n\n", batchTimeout)

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessPaths(ctx, paths)

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		outPath := filepath.Join(outputDir, assembledName(res.Path))
		if err := p.RenderJSON(res.Result, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: write result: %v\n", res.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", res.Path, outPath)
		}
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d corpora, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d corpora failed", failed, len(results))
	}
	return nil
}

// collectCorpusPaths resolves the batch input: a directory yields its .json
// files, anything else is read as a list file (one path per line).
func collectCorpusPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		paths, err := worker.ReadPathsFromFile(input)
		if err != nil {
			return nil, fmt.Errorf("read list file: %w", err)
		}
		return paths, nil
	}
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(input, e.Name()))
	}
	return paths, nil
}

// assembledName derives the output file name for a corpus path.
func assembledName(corpusPath string) string {
	base := filepath.Base(corpusPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".assembled.json"
}
