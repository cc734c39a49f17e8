package preassembly

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/sorgerlab/indra-sub002/internal/logger"
	"github.com/sorgerlab/indra-sub002/internal/model"
	"github.com/sorgerlab/indra-sub002/internal/ontology"
	"github.com/sorgerlab/indra-sub002/internal/worker"
)

// Options controls the orchestrator's concurrency behavior.
type Options struct {
	// Workers is the pool size for per-type refinement jobs.
	Workers int

	// PartitionThreshold is the minimum partition size dispatched to the
	// pool; smaller type partitions run inline, where dispatch overhead
	// would exceed the work itself.
	PartitionThreshold int
}

// DefaultOptions returns the orchestrator defaults.
func DefaultOptions() Options {
	return Options{
		Workers:            runtime.NumCPU(),
		PartitionThreshold: 1000,
	}
}

// refinementJob computes the confirmed refinement edges for one statement
// type partition. Jobs receive only the statements of their type plus the
// shared read-only ontology client and return plain edge data; all support
// edge mutation happens serially in Preassemble afterwards.
type refinementJob struct {
	stmts []*model.Statement
	onto  ontology.Client
}

// Execute implements worker.Job.
func (j *refinementJob) Execute(ctx context.Context) worker.Result {
	links, malformed := partitionLinks(j.stmts, j.onto)
	return &refinementResult{links: links, malformed: malformed}
}

// refinementResult carries one partition's edge list out of the pool.
type refinementResult struct {
	links     []model.SupportLink
	malformed int
	err       error
}

// GetError implements worker.Result.
func (r *refinementResult) GetError() error { return r.err }

// partitionLinks runs candidate generation and confirmation over one type
// partition and returns the confirmed edges (specific supports general).
func partitionLinks(stmts []*model.Statement, onto ontology.Client) ([]model.SupportLink, int) {
	byHash := make(map[model.Hash]*model.Statement, len(stmts))
	for _, s := range stmts {
		byHash[s.ShallowHash()] = s
	}
	filter := NewRefinementFilter(onto, byHash)

	skip := make(map[model.Hash]bool, len(filter.Malformed()))
	for _, h := range filter.Malformed() {
		skip[h] = true
	}

	var links []model.SupportLink
	for _, s := range stmts {
		h := s.ShallowHash()
		if skip[h] {
			continue
		}
		candidates := filter.LessSpecific(s)
		confirmed := filter.Confirm(s, candidates, LessSpecific, true)
		for general := range confirmed {
			links = append(links, model.SupportLink{Supporting: h, Supported: general})
		}
	}
	return links, len(filter.Malformed())
}

// Preassemble runs the full pipeline: deduplication, per-type refinement
// discovery, support graph construction and top-level extraction. The
// ontology client is injected explicitly and only ever read. For a fixed
// input ordering and ontology snapshot the resulting edge set is fully
// deterministic; only evidence ordering inside duplicate groups may vary
// with input order, which the dedup contract allows.
//
// Support edges on the inputs are recomputed from scratch, which makes the
// operation idempotent over its own output.
func Preassemble(ctx context.Context, stmts []*model.Statement, onto ontology.Client, opts Options) (*model.Result, error) {
	if onto == nil {
		return nil, errors.New("preassemble: ontology client is required")
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	if opts.PartitionThreshold <= 0 {
		opts.PartitionThreshold = DefaultOptions().PartitionThreshold
	}

	unique, _ := CombineDuplicates(stmts)
	for _, s := range unique {
		s.Supports = nil
		s.SupportedBy = nil
	}

	// Partition by statement type; refinement never crosses type boundaries.
	byType := make(map[model.StatementType][]*model.Statement)
	var typeOrder []model.StatementType
	for _, s := range unique {
		if _, seen := byType[s.Type]; !seen {
			typeOrder = append(typeOrder, s.Type)
		}
		byType[s.Type] = append(byType[s.Type], s)
	}
	sort.Slice(typeOrder, func(i, j int) bool { return typeOrder[i] < typeOrder[j] })

	pool := worker.NewPool(opts.Workers)
	pool.Start()

	var (
		links      []model.SupportLink
		malformed  int
		dispatched int
	)
	for _, t := range typeOrder {
		if err := ctx.Err(); err != nil {
			pool.Shutdown()
			return nil, err
		}
		partition := byType[t]
		if len(partition) >= opts.PartitionThreshold && opts.Workers > 1 {
			pool.Submit(&refinementJob{stmts: partition, onto: onto})
			dispatched++
			continue
		}
		partLinks, partMalformed := partitionLinks(partition, onto)
		links = append(links, partLinks...)
		malformed += partMalformed
	}

	for _, res := range pool.Wait() {
		rr := res.(*refinementResult)
		links = append(links, rr.links...)
		malformed += rr.malformed
	}
	if dispatched > 0 {
		logger.Logger.Debugw("refinement partitions dispatched to pool",
			"dispatched", dispatched, "workers", opts.Workers)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic edge ordering regardless of partition scheduling.
	sort.Slice(links, func(i, j int) bool {
		if links[i].Supporting != links[j].Supporting {
			return links[i].Supporting < links[j].Supporting
		}
		return links[i].Supported < links[j].Supported
	})

	// Apply all edges in one serial pass; both sides of each edge are
	// written together so no statement is ever half-linked.
	byHash := make(map[model.Hash]*model.Statement, len(unique))
	for _, s := range unique {
		byHash[s.ShallowHash()] = s
	}
	for _, link := range links {
		specific, okS := byHash[link.Supporting]
		general, okG := byHash[link.Supported]
		if !okS || !okG {
			continue
		}
		specific.Supports = append(specific.Supports, link.Supported)
		general.SupportedBy = append(general.SupportedBy, link.Supporting)
	}

	var topLevel []model.Hash
	stats := model.Stats{
		Input:      len(stmts),
		Unique:     len(unique),
		Duplicates: len(stmts) - len(unique),
		Malformed:  malformed,
		Links:      len(links),
		ByType:     make(map[model.StatementType]int, len(byType)),
	}
	for _, s := range unique {
		stats.ByType[s.Type]++
		if len(s.Supports) == 0 {
			topLevel = append(topLevel, s.ShallowHash())
		}
	}
	stats.TopLevel = len(topLevel)

	return &model.Result{
		PreassembledAt: time.Now().UTC(),
		Statements:     unique,
		TopLevel:       topLevel,
		Links:          links,
		Stats:          stats,
	}, nil
}
