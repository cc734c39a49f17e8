package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorgerlab/indra-sub002/internal/model"
)

func TestReadCorpus(t *testing.T) {
	corpus := `[
		{"type": "phosphorylation",
		 "roles": {"enz": {"name": "MAP2K1", "groundings": {"HGNC": "6840"}},
		           "sub": {"name": "MAPK1", "groundings": {"HGNC": "6871"}}},
		 "params": {"residue": "T", "position": "185"},
		 "evidence": [{"source": "reach", "text": "MEK1 phosphorylates ERK2."}],
		 "belief": 0.9},
		{"type": "complex",
		 "roles": {"members": [{"name": "KRAS", "groundings": {"HGNC": "6407"}},
		                       {"name": "BRAF", "groundings": {"HGNC": "1097"}}]}},
		{"type": "phosphorylation",
		 "roles": {"sub": {"name": "MAPK1", "groundings": {"HGNC": "6871"}}}}
	]`

	stmts, skipped, err := ReadCorpus(strings.NewReader(corpus))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, stmts, 3)

	assert.Equal(t, model.TypePhosphorylation, stmts[0].Type)
	v, ok := stmts[0].Param("position")
	assert.True(t, ok)
	assert.Equal(t, "185", v)
	assert.Len(t, stmts[1].Roles[model.RoleMembers].Members, 2)

	// Optional enzyme omitted: valid, maximally general.
	require.NoError(t, stmts[2].Validate())
	assert.Equal(t, []model.AgentKey{model.KeyNone}, stmts[2].RoleKeys(model.RoleEnzyme))
}

func TestReadCorpusSkipsUndecodableRecords(t *testing.T) {
	corpus := `[
		{"type": "phosphorylation", "roles": {"catalyst": {"name": "x"}}},
		{"type": "active_form", "roles": {"agent": {"name": "p53"}}}
	]`

	stmts, skipped, err := ReadCorpus(strings.NewReader(corpus))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, stmts, 1)
	assert.Equal(t, model.TypeActiveForm, stmts[0].Type)
}

func TestReadCorpusBrokenStream(t *testing.T) {
	_, _, err := ReadCorpus(strings.NewReader(`[{"type": `))
	require.Error(t, err)
}

func TestReadCorpusPreservesOrder(t *testing.T) {
	corpus := `[
		{"type": "active_form", "roles": {"agent": {"name": "first"}}, "evidence": [{"source": "a"}]},
		{"type": "active_form", "roles": {"agent": {"name": "first"}}, "evidence": [{"source": "b"}]}
	]`

	stmts, _, err := ReadCorpus(strings.NewReader(corpus))
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "a", stmts[0].Evidence[0].Source)
	assert.Equal(t, stmts[0].ShallowHash(), stmts[1].ShallowHash())
}
