package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	t.Run("nil agent is the none sentinel", func(t *testing.T) {
		assert.Equal(t, KeyNone, KeyOf(nil))
		assert.True(t, KeyOf(nil).IsNone())
	})

	t.Run("ungrounded agent falls back to its name", func(t *testing.T) {
		k := KeyOf(NewAgent("mystery kinase"))
		assert.Equal(t, AgentKey{Namespace: NamespaceName, ID: "mystery kinase"}, k)
		assert.False(t, k.Grounded())
	})

	t.Run("priority namespace wins over others", func(t *testing.T) {
		a := &Agent{Name: "KRAS", Groundings: map[string]string{
			"UP":   "P01116",
			"HGNC": "6407",
		}}
		assert.Equal(t, AgentKey{Namespace: "HGNC", ID: "6407"}, KeyOf(a))
	})

	t.Run("off-priority namespaces pick deterministically", func(t *testing.T) {
		a := &Agent{Name: "x", Groundings: map[string]string{
			"ZFIN": "1", "BTO": "2",
		}}
		assert.Equal(t, AgentKey{Namespace: "BTO", ID: "2"}, KeyOf(a))
	})
}

func TestStatementValidate(t *testing.T) {
	t.Run("optional enzyme may be absent", func(t *testing.T) {
		s := NewStatement(TypePhosphorylation).
			SetAgent(RoleSubstrate, GroundedAgent("BRAF", "HGNC", "1097"))
		require.NoError(t, s.Validate())
	})

	t.Run("missing required substrate is malformed", func(t *testing.T) {
		s := NewStatement(TypePhosphorylation).
			SetAgent(RoleEnzyme, GroundedAgent("MAP2K1", "HGNC", "6840"))
		require.Error(t, s.Validate())
	})

	t.Run("unknown type is malformed", func(t *testing.T) {
		require.Error(t, NewStatement(StatementType("translocation")).Validate())
	})

	t.Run("unknown parameter is malformed", func(t *testing.T) {
		s := NewStatement(TypeComplex).
			SetMembers(RoleMembers, NewAgent("a"), NewAgent("b")).
			SetParam("residue", "S")
		require.Error(t, s.Validate())
	})
}

func TestRoleKeys(t *testing.T) {
	t.Run("empty list role contributes the none sentinel", func(t *testing.T) {
		s := NewStatement(TypeComplex)
		assert.Equal(t, []AgentKey{KeyNone}, s.RoleKeys(RoleMembers))
	})

	t.Run("list role contributes one key per member", func(t *testing.T) {
		s := NewStatement(TypeComplex).SetMembers(RoleMembers,
			GroundedAgent("KRAS", "HGNC", "6407"),
			NewAgent("partner"),
		)
		assert.Equal(t, []AgentKey{
			{Namespace: "HGNC", ID: "6407"},
			{Namespace: NamespaceName, ID: "partner"},
		}, s.RoleKeys(RoleMembers))
	})
}

func TestStatementJSONRoundTrip(t *testing.T) {
	s := NewStatement(TypePhosphorylation).
		SetAgent(RoleEnzyme, GroundedAgent("MAP2K1", "HGNC", "6840")).
		SetAgent(RoleSubstrate, GroundedAgent("MAPK1", "HGNC", "6871")).
		SetParam("residue", "T").
		SetParam("position", "185")
	s.Evidence = []Evidence{{Source: "reach", Text: "MEK1 phosphorylates ERK2 at T185."}}
	s.Belief = 0.87

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Statement
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.ShallowHash(), back.ShallowHash())
	assert.Equal(t, s.Evidence, back.Evidence)
	assert.Equal(t, s.Belief, back.Belief)
}

func TestStatementJSONRejectsUnknownRole(t *testing.T) {
	raw := `{"type":"phosphorylation","roles":{"catalyst":{"name":"x"}}}`
	var s Statement
	require.Error(t, json.Unmarshal([]byte(raw), &s))
}

func TestStatementJSONUnknownTypeDecodes(t *testing.T) {
	raw := `{"type":"translocation","roles":{"agent":{"name":"x"}},"belief":0.5}`
	var s Statement
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.False(t, KnownType(s.Type))
	assert.Empty(t, s.Roles)
}
