package preassembly

import (
	"github.com/sorgerlab/indra-sub002/internal/logger"
	"github.com/sorgerlab/indra-sub002/internal/model"
	"github.com/sorgerlab/indra-sub002/internal/ontology"
)

// Confirm runs the exact refinement predicate over an ontology-filtered
// candidate set and returns the confirmed subset.
//
// entitiesRefined certifies that the candidates came from this filter's
// candidate pass for the same statement and direction: single-valued roles
// were then matched key-by-key against the ontology closure already, so the
// exact check can skip re-walking the ontology for them. List-valued roles
// were only certified as set intersection and always get the full
// per-member pairing check.
func (f *RefinementFilter) Confirm(s *model.Statement, candidates map[model.Hash]bool, dir Direction, entitiesRefined bool) map[model.Hash]bool {
	confirmed := make(map[model.Hash]bool)
	for h := range candidates {
		other, ok := f.stmts[h]
		if !ok {
			continue
		}
		specific, general := s, other
		if dir == MoreSpecific {
			specific, general = other, s
		}
		if Refines(specific, general, f.onto, entitiesRefined) {
			confirmed[h] = true
		}
	}
	return confirmed
}

// Refines reports whether specific is an equal-or-more-specific version of
// general: same statement type, every role's agents equal to or descendants
// of general's, and every scalar parameter general constrains matched
// exactly. entitiesRefined skips the ontology membership re-check on
// single-valued roles (see Confirm); pass false when calling directly.
func Refines(specific, general *model.Statement, onto ontology.Client, entitiesRefined bool) bool {
	if specific.Type != general.Type {
		return false
	}
	specs, ok := model.RoleTable(specific.Type)
	if !ok {
		return false
	}

	for _, spec := range specs {
		if spec.List {
			if !membersCover(specific.Roles[spec.Name].Members, general.Roles[spec.Name].Members, onto) {
				return false
			}
			continue
		}
		specKey := model.KeyOf(specific.Roles[spec.Name].Agent)
		genKey := model.KeyOf(general.Roles[spec.Name].Agent)
		if genKey.IsNone() {
			continue // unconstrained slot matches anything
		}
		if specKey.IsNone() {
			return false
		}
		if entitiesRefined {
			continue
		}
		if !keyRefines(specKey, genKey, onto) {
			return false
		}
	}

	for _, name := range model.ParamTable(general.Type) {
		genVal, constrained := general.Param(name)
		if !constrained {
			continue
		}
		specVal, present := specific.Param(name)
		if !present || specVal != genVal {
			return false
		}
	}
	return true
}

// keyRefines reports whether a single agent key is equal to or an ontology
// descendant of another. Name-fallback keys only ever match by equality.
func keyRefines(specKey, genKey model.AgentKey, onto ontology.Client) bool {
	if specKey == genKey {
		return true
	}
	if !specKey.Grounded() || !genKey.Grounded() {
		return false
	}
	anc, err := onto.Ancestors(specKey.Namespace, specKey.ID)
	if err != nil {
		logger.Logger.Debugw("ontology lookup failed during confirmation",
			"key", specKey.String(), "error", err)
		return false
	}
	return anc[ontology.Ref{Namespace: genKey.Namespace, ID: genKey.ID}]
}

// membersCover checks the per-member pairing for a list-valued role: every
// member of the general statement must be refined by a distinct member of
// the specific one. The candidate filter only certified set intersection,
// so the pairing is established here by backtracking over the (small)
// member lists. An empty general member list is unconstrained.
func membersCover(specific, general []*model.Agent, onto ontology.Client) bool {
	if len(general) == 0 {
		return true
	}
	if len(specific) < len(general) {
		return false
	}
	used := make([]bool, len(specific))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(general) {
			return true
		}
		genKey := model.KeyOf(general[i])
		for j := range specific {
			if used[j] {
				continue
			}
			if !keyRefines(model.KeyOf(specific[j]), genKey, onto) {
				continue
			}
			used[j] = true
			if match(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	return match(0)
}
