// Package pipeline wires corpus ingestion, the preassembly engine and
// result rendering into the end-to-end flow the CLI drives.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/sorgerlab/indra-sub002/internal/extract"
	"github.com/sorgerlab/indra-sub002/internal/logger"
	"github.com/sorgerlab/indra-sub002/internal/model"
	"github.com/sorgerlab/indra-sub002/internal/ontology"
	"github.com/sorgerlab/indra-sub002/internal/preassembly"
)

// Pipeline orchestrates the complete preassembly process for corpus files:
// read statements, run the engine against the configured ontology, render
// results. It implements worker.Runner so batch mode can fan corpus files
// out over the pool.
type Pipeline struct {
	onto ontology.Client
	opts preassembly.Options
	cfg  *model.Config
}

// NewPipeline creates a pipeline with the given configuration, loading the
// ontology snapshot and wrapping it with closure caching when enabled.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg.Ontology.Path == "" {
		return nil, errors.New("no ontology snapshot configured")
	}
	graph, err := ontology.LoadYAML(cfg.Ontology.Path, cfg.Ontology.Relations...)
	if err != nil {
		return nil, errors.Wrap(err, "load ontology")
	}
	nodes, edges := graph.Stats()
	logger.Logger.Infow("ontology loaded",
		"path", cfg.Ontology.Path, "concepts", nodes, "edges", edges)

	var onto ontology.Client = graph
	if cfg.Ontology.CacheClosures {
		onto = ontology.NewCachedClient(graph, cfg.Ontology.CacheTTL)
	}

	return &Pipeline{
		onto: onto,
		opts: preassembly.Options{
			Workers:            cfg.Concurrency.Workers,
			PartitionThreshold: cfg.Concurrency.PartitionThreshold,
		},
		cfg: cfg,
	}, nil
}

// PreassembleFile reads one corpus file and preassembles it.
func (p *Pipeline) PreassembleFile(ctx context.Context, path string) (*model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open corpus")
	}
	defer func() { _ = f.Close() }()

	stmts, skipped, err := extract.ReadCorpus(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read corpus %s", path)
	}
	if skipped > 0 {
		logger.Logger.Warnw("corpus records skipped during ingestion",
			"path", path, "skipped", skipped)
	}

	result, err := preassembly.Preassemble(ctx, stmts, p.onto, p.opts)
	if err != nil {
		return nil, errors.Wrapf(err, "preassemble %s", path)
	}
	return result, nil
}

// RenderJSON writes the result to path as indented JSON.
func (p *Pipeline) RenderJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal result")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}

// Summary renders a short human-readable digest of a result.
func Summary(result *model.Result) string {
	return fmt.Sprintf(
		"statements: %d in, %d unique (%d duplicates merged), %d malformed\n"+
			"refinement: %d support links, %d top-level statements\n",
		result.Stats.Input, result.Stats.Unique, result.Stats.Duplicates,
		result.Stats.Malformed, result.Stats.Links, result.Stats.TopLevel)
}
