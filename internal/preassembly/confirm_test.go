package preassembly

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sorgerlab/indra-sub002/internal/model"
)

func TestRefinesFamilyMembership(t *testing.T) {
	onto := testOntology()

	assert.True(t, Refines(phos(mek(), kras()), phos(mekFam(), rasFam()), onto, false))

	// Same family, different member: no refinement either way.
	assert.False(t, Refines(phos(mek(), kras()), phos(mek(), hras()), onto, false))
	assert.False(t, Refines(phos(mek(), hras()), phos(mek(), kras()), onto, false))

	// Refinement is directed: the family statement does not refine the
	// member statement.
	assert.False(t, Refines(phos(mekFam(), rasFam()), phos(mek(), kras()), onto, false))
}

func TestRefinesScalarParams(t *testing.T) {
	onto := testOntology()
	plain := phos(mek(), erk())
	site := phos(mek(), erk()).SetParam("residue", "T").SetParam("position", "185")
	otherSite := phos(mek(), erk()).SetParam("residue", "T").SetParam("position", "202")

	// A statement that specifies a site refines the otherwise-identical
	// statement that leaves it unspecified, never the reverse.
	assert.True(t, Refines(site, plain, onto, false))
	assert.False(t, Refines(plain, site, onto, false))

	// Conflicting sites are unrelated.
	assert.False(t, Refines(site, otherSite, onto, false))
	assert.False(t, Refines(otherSite, site, onto, false))
}

func TestRefinesTypeMismatch(t *testing.T) {
	onto := testOntology()
	p := phos(mek(), kras())
	c := model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, mek(), kras())

	// Identical agents under different statement shapes never relate.
	assert.False(t, Refines(p, c, onto, false))
	assert.False(t, Refines(c, p, onto, false))
}

func TestRefinesNoneSlot(t *testing.T) {
	onto := testOntology()

	assert.True(t, Refines(phos(mek(), kras()), phos(nil, kras()), onto, false))
	assert.False(t, Refines(phos(nil, kras()), phos(mek(), kras()), onto, false))
}

func TestMembersCover(t *testing.T) {
	onto := testOntology()

	c := func(members ...*model.Agent) *model.Statement {
		return model.NewStatement(model.TypeComplex).SetMembers(model.RoleMembers, members...)
	}

	// Member-for-member refinement with distinct pairing.
	assert.True(t, Refines(c(kras(), mek()), c(rasFam(), mekFam()), onto, false))
	assert.True(t, Refines(c(mek(), kras()), c(rasFam(), mekFam()), onto, false), "member order irrelevant")

	// Two general RAS slots need two distinct refining members: a single
	// KRAS cannot cover both.
	assert.True(t, Refines(c(kras(), hras()), c(rasFam(), rasFam()), onto, false))
	assert.False(t, Refines(c(kras()), c(rasFam(), rasFam()), onto, false))

	// The pairing must be injective even when one specific member could
	// cover either slot.
	assert.True(t, Refines(c(kras(), kras()), c(rasFam(), rasFam()), onto, false))

	// An unconstrained complex is refined by any complex.
	assert.True(t, Refines(c(kras(), mek()), c(), onto, false))
	assert.False(t, Refines(c(), c(kras()), onto, false))
}

func TestConfirmFiltersFalsePositives(t *testing.T) {
	onto := testOntology()

	// Both site statements share the plain statement as a candidate, but
	// only matching scalar params survive confirmation.
	plain := phos(mek(), erk())
	siteA := phos(mek(), erk()).SetParam("residue", "T").SetParam("position", "185")
	siteB := phos(mek(), erk()).SetParam("residue", "T").SetParam("position", "202")

	f := NewRefinementFilter(onto, indexOf(plain, siteA, siteB))

	candidates := f.LessSpecific(siteA)
	// The candidate pass cannot see scalar params, so the conflicting site
	// statement shows up as a false positive.
	assert.True(t, candidates[plain.ShallowHash()])
	assert.True(t, candidates[siteB.ShallowHash()])

	confirmed := f.Confirm(siteA, candidates, LessSpecific, true)
	assert.Equal(t, map[model.Hash]bool{plain.ShallowHash(): true}, confirmed)
}

func TestConfirmAntisymmetry(t *testing.T) {
	onto := testOntology()
	corpus := []*model.Statement{
		phos(mek(), kras()),
		phos(mekFam(), rasFam()),
		phos(nil, kras()),
		phos(mek(), kras()).SetParam("residue", "S"),
	}

	f := NewRefinementFilter(onto, indexOf(corpus...))
	for _, a := range corpus {
		confirmed := f.Confirm(a, f.LessSpecific(a), LessSpecific, true)
		for h := range confirmed {
			b, ok := f.Statement(h)
			assert.True(t, ok)
			assert.False(t, Refines(b, a, onto, false),
				"antisymmetry violated between %s and %s", a.MatterString(), b.MatterString())
		}
	}
}
