// Package preassembly implements the statement preassembly engine:
// content-hash deduplication with provenance merge, ontology-guided
// refinement discovery, and construction of the supports/supported_by graph
// from which top-level statements are extracted.
package preassembly

import (
	"github.com/sorgerlab/indra-sub002/internal/model"
)

// CombineDuplicates collapses exact duplicates (equal content hash) into one
// representative per hash. The first-encountered statement of each group
// survives and absorbs every other group member's evidence list in encounter
// order, so total evidence count is conserved. The representative's belief
// is raised to the group maximum; belief is computed upstream, this engine
// only carries the strongest reported value forward. Support edges are not
// touched here.
//
// The returned slice preserves first-seen order; the returned map records
// the full duplicate group per hash, representative first.
func CombineDuplicates(stmts []*model.Statement) ([]*model.Statement, map[model.Hash][]*model.Statement) {
	unique := make([]*model.Statement, 0, len(stmts))
	groups := make(map[model.Hash][]*model.Statement)

	for _, s := range stmts {
		h := s.ShallowHash()
		group, seen := groups[h]
		if !seen {
			groups[h] = []*model.Statement{s}
			unique = append(unique, s)
			continue
		}
		rep := group[0]
		rep.Evidence = append(rep.Evidence, s.Evidence...)
		if s.Belief > rep.Belief {
			rep.Belief = s.Belief
		}
		groups[h] = append(group, s)
	}

	return unique, groups
}
