package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sorgerlab/indra-sub002/internal/model"
	"github.com/sorgerlab/indra-sub002/internal/pipeline"
)

var (
	outJSON       string
	ontologyPath  string
	runTimeout    time.Duration
	workers       int
	partThreshold int
	noClosureCache bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <corpus.json>",
	Short: "Preassemble a single statement corpus",
	Long: `Run preassembles one corpus of mechanistic statements:
- Collapse exact duplicates by content hash, merging evidence
- Discover refinement relations against the configured ontology
- Build the supports/supported_by graph and extract top-level statements

Statement order matters only among exact duplicates: the first-seen copy
becomes the surviving representative.

Example:
  preassembly run corpus.json --ontology bio_ontology.yaml
  preassembly run corpus.json --ontology bio_ontology.yaml --json assembled.json
  preassembly run corpus.json --workers 8 --partition-threshold 500`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outJSON, "json", "assembled.json", "output JSON path")

	// Engine flags
	runCmd.Flags().StringVar(&ontologyPath, "ontology", "", "ontology snapshot file (YAML edge list)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall preassembly timeout")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker count for large statement-type partitions (0 = all CPUs)")
	runCmd.Flags().IntVar(&partThreshold, "partition-threshold", 0, "minimum partition size for worker dispatch (0 = default)")
	runCmd.Flags().BoolVar(&noClosureCache, "no-closure-cache", false, "disable ontology closure memoization")
}

func runRun(cmd *cobra.Command, args []string) error {
	corpus := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := buildConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Preassembling: %s\n", corpus)
		fmt.Fprintf(os.Stderr, "Ontology: %s\n", cfg.Ontology.Path)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.PreassembleFile(ctx, corpus)
	if err != nil {
		return fmt.Errorf("preassembly failed: %w", err)
	}

	if outJSON != "" {
		if err := p.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	fmt.Print(pipeline.Summary(result))
	return nil
}

// buildConfig assembles the engine configuration from defaults, config file
// values and flags, in ascending priority.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	applyViperConfig(cfg)

	if ontologyPath != "" {
		cfg.Ontology.Path = ontologyPath
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if partThreshold > 0 {
		cfg.Concurrency.PartitionThreshold = partThreshold
	}
	if noClosureCache {
		cfg.Ontology.CacheClosures = false
	}
	cfg.Output.Verbose = verbose
	cfg.Output.JSONLogs = jsonLogs
	return cfg
}
