package preassembly

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorgerlab/indra-sub002/internal/model"
)

func inlineOpts() Options {
	return Options{Workers: 1, PartitionThreshold: 1 << 30}
}

// Scenario: two phosphorylations with identical groundings but different
// evidence merge into one statement with both evidence entries and no
// refinement edges.
func TestPreassembleExactDuplicateMerge(t *testing.T) {
	a := phos(mek(), erk())
	a.Evidence = []model.Evidence{{Source: "reach", Text: "MEK phosphorylates ERK."}}
	b := phos(mek(), erk())
	b.Evidence = []model.Evidence{{Source: "sparser", Text: "ERK is phosphorylated by MEK."}}

	res, err := Preassemble(context.Background(), []*model.Statement{a, b}, testOntology(), inlineOpts())
	require.NoError(t, err)

	require.Len(t, res.Statements, 1)
	assert.Len(t, res.Statements[0].Evidence, 2)
	assert.Empty(t, res.Links)
	assert.Equal(t, []model.Hash{a.ShallowHash()}, res.TopLevel)
	assert.Equal(t, 2, res.Stats.Input)
	assert.Equal(t, 1, res.Stats.Unique)
	assert.Equal(t, 1, res.Stats.Duplicates)
}

// Scenario: a complex over a protein family is supported by the same
// complex over a specific family member.
func TestPreassembleFamilyRefinement(t *testing.T) {
	member := model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, kras(), mek())
	family := model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, rasFam(), mek())

	res, err := Preassemble(context.Background(), []*model.Statement{family, member}, testOntology(), inlineOpts())
	require.NoError(t, err)

	require.Len(t, res.Links, 1)
	assert.Equal(t, member.ShallowHash(), res.Links[0].Supporting)
	assert.Equal(t, family.ShallowHash(), res.Links[0].Supported)

	assert.Equal(t, []model.Hash{family.ShallowHash()}, member.Supports)
	assert.Equal(t, []model.Hash{member.ShallowHash()}, family.SupportedBy)
	assert.Equal(t, []model.Hash{member.ShallowHash()}, res.TopLevel)
}

// Scenario: a site-specified phosphorylation refines the site-unspecified
// one, which therefore is not top-level.
func TestPreassembleSiteRefinement(t *testing.T) {
	plain := phos(mek(), erk())
	site := phos(mek(), erk()).SetParam("residue", "S").SetParam("position", "222")

	res, err := Preassemble(context.Background(), []*model.Statement{plain, site}, testOntology(), inlineOpts())
	require.NoError(t, err)

	require.Len(t, res.Links, 1)
	assert.Equal(t, site.ShallowHash(), res.Links[0].Supporting)
	assert.Equal(t, plain.ShallowHash(), res.Links[0].Supported)
	assert.Equal(t, []model.Hash{site.ShallowHash()}, res.TopLevel)
}

// Scenario: statements of different types sharing agents never link.
func TestPreassembleTypesNeverMix(t *testing.T) {
	p := phos(mek(), kras())
	c := model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, mek(), kras())

	res, err := Preassemble(context.Background(), []*model.Statement{p, c}, testOntology(), inlineOpts())
	require.NoError(t, err)

	assert.Empty(t, res.Links)
	assert.Len(t, res.TopLevel, 2)
}

// Scenario: ungrounded agents compare through the literal-name fallback.
func TestPreassembleUngroundedAgents(t *testing.T) {
	a := model.NewStatement(model.TypeActiveForm).SetAgent(model.RoleAgent, model.NewAgent("p53 dimer"))
	a.Evidence = []model.Evidence{{Source: "reach"}}
	b := model.NewStatement(model.TypeActiveForm).SetAgent(model.RoleAgent, model.NewAgent("p53 dimer"))
	b.Evidence = []model.Evidence{{Source: "trips"}}
	c := model.NewStatement(model.TypeActiveForm).SetAgent(model.RoleAgent, model.NewAgent("p53 tetramer"))

	res, err := Preassemble(context.Background(), []*model.Statement{a, b, c}, testOntology(), inlineOpts())
	require.NoError(t, err)

	assert.Len(t, res.Statements, 2)
	assert.Len(t, a.Evidence, 2)
	assert.Empty(t, res.Links)
}

func TestPreassembleIdempotent(t *testing.T) {
	stmts := []*model.Statement{
		phos(mek(), erk()),
		phos(mek(), erk()).SetParam("residue", "T"),
		phos(mekFam(), erk()),
		phos(nil, erk()),
	}

	first, err := Preassemble(context.Background(), stmts, testOntology(), inlineOpts())
	require.NoError(t, err)

	second, err := Preassemble(context.Background(), first.Statements, testOntology(), inlineOpts())
	require.NoError(t, err)

	assert.Equal(t, first.TopLevel, second.TopLevel)
	assert.Equal(t, first.Links, second.Links)
	assert.Equal(t, len(first.Statements), len(second.Statements))
}

func TestPreassembleDeterministicAcrossInputOrder(t *testing.T) {
	build := func() []*model.Statement {
		return []*model.Statement{
			phos(mek(), kras()),
			phos(mekFam(), rasFam()),
			phos(nil, kras()),
			phos(mek(), kras()).SetParam("residue", "S"),
		}
	}
	forward := build()
	reversed := build()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	a, err := Preassemble(context.Background(), forward, testOntology(), inlineOpts())
	require.NoError(t, err)
	b, err := Preassemble(context.Background(), reversed, testOntology(), inlineOpts())
	require.NoError(t, err)

	assert.Equal(t, a.Links, b.Links, "edge set is independent of input order")
	assert.ElementsMatch(t, a.TopLevel, b.TopLevel)
}

func TestPreassembleSupportsFormsDAG(t *testing.T) {
	stmts := []*model.Statement{
		phos(mek(), kras()),
		phos(mekFam(), kras()),
		phos(mekFam(), rasFam()),
		phos(nil, rasFam()),
		phos(mek(), kras()).SetParam("residue", "S"),
	}
	res, err := Preassemble(context.Background(), stmts, testOntology(), inlineOpts())
	require.NoError(t, err)
	require.NotEmpty(t, res.Links)

	adj := make(map[model.Hash][]model.Hash)
	for _, l := range res.Links {
		adj[l.Supporting] = append(adj[l.Supporting], l.Supported)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[model.Hash]int)
	var visit func(h model.Hash) bool
	visit = func(h model.Hash) bool {
		color[h] = gray
		for _, next := range adj[h] {
			switch color[next] {
			case gray:
				return false
			case white:
				if !visit(next) {
					return false
				}
			}
		}
		color[h] = black
		return true
	}
	for h := range adj {
		if color[h] == white {
			assert.True(t, visit(h), "supports relation contains a cycle")
		}
	}
}

func TestPreassembleWorkerPathMatchesInline(t *testing.T) {
	build := func() []*model.Statement {
		return []*model.Statement{
			phos(mek(), kras()),
			phos(mekFam(), rasFam()),
			phos(nil, kras()),
			phos(mek(), hras()),
			model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, kras(), mek()),
			model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, rasFam(), mekFam()),
		}
	}

	inline, err := Preassemble(context.Background(), build(), testOntology(), inlineOpts())
	require.NoError(t, err)

	parallel, err := Preassemble(context.Background(), build(), testOntology(),
		Options{Workers: 4, PartitionThreshold: 1})
	require.NoError(t, err)

	assert.Equal(t, inline.Links, parallel.Links)
	assert.Equal(t, inline.TopLevel, parallel.TopLevel)
}

func TestPreassembleMalformedKeptInCorpus(t *testing.T) {
	ok := phos(mek(), kras())
	bad := model.NewStatement(model.TypePhosphorylation).SetAgent(model.RoleEnzyme, mek())

	res, err := Preassemble(context.Background(), []*model.Statement{ok, bad}, testOntology(), inlineOpts())
	require.NoError(t, err)

	assert.Len(t, res.Statements, 2, "malformed statements stay in the corpus")
	assert.Equal(t, 1, res.Stats.Malformed)
	assert.Empty(t, res.Links)
}

func TestPreassembleRequiresOntology(t *testing.T) {
	_, err := Preassemble(context.Background(), nil, nil, inlineOpts())
	require.Error(t, err)
}

func TestPreassembleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Preassemble(ctx, []*model.Statement{phos(mek(), kras())}, testOntology(), inlineOpts())
	require.ErrorIs(t, err, context.Canceled)
}
