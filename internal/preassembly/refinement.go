package preassembly

import (
	"github.com/sorgerlab/indra-sub002/internal/logger"
	"github.com/sorgerlab/indra-sub002/internal/model"
	"github.com/sorgerlab/indra-sub002/internal/ontology"
)

// Direction selects which side of the refinement relation a candidate query
// looks for.
type Direction int

const (
	// LessSpecific finds statements the query statement might refine.
	LessSpecific Direction = iota
	// MoreSpecific finds statements that might refine the query statement.
	MoreSpecific
)

// RefinementFilter generates refinement candidates without all-pairs
// comparison. It indexes, per statement type and role, which AgentKeys each
// statement carries; a query then only walks the ontology closure of its own
// keys and intersects with keys actually observed in the corpus, so the
// (possibly huge) rest of the ontology is never enumerated.
//
// The candidate sets are supersets of the true refinement relation: every
// genuinely refining pair appears, false positives are removed by Confirm.
type RefinementFilter struct {
	onto  ontology.Client
	stmts map[model.Hash]*model.Statement

	// forward: type -> role -> key -> statements carrying that key in that role
	forward map[model.StatementType]map[model.Role]map[model.AgentKey]map[model.Hash]bool

	malformed []model.Hash
}

// NewRefinementFilter indexes the given statements (keyed by content hash)
// for candidate generation. Malformed statements are logged and left out of
// the index; they remain in the corpus but take no part in refinement.
func NewRefinementFilter(onto ontology.Client, byHash map[model.Hash]*model.Statement) *RefinementFilter {
	f := &RefinementFilter{
		onto:    onto,
		stmts:   byHash,
		forward: make(map[model.StatementType]map[model.Role]map[model.AgentKey]map[model.Hash]bool),
	}
	for h, s := range byHash {
		if err := s.Validate(); err != nil {
			logger.Logger.Warnw("statement excluded from refinement", "hash", h, "error", err)
			f.malformed = append(f.malformed, h)
			continue
		}
		specs, _ := model.RoleTable(s.Type)
		byRole, ok := f.forward[s.Type]
		if !ok {
			byRole = make(map[model.Role]map[model.AgentKey]map[model.Hash]bool, len(specs))
			f.forward[s.Type] = byRole
		}
		for _, spec := range specs {
			byKey, ok := byRole[spec.Name]
			if !ok {
				byKey = make(map[model.AgentKey]map[model.Hash]bool)
				byRole[spec.Name] = byKey
			}
			for _, k := range s.RoleKeys(spec.Name) {
				hashes, ok := byKey[k]
				if !ok {
					hashes = make(map[model.Hash]bool)
					byKey[k] = hashes
				}
				hashes[h] = true
			}
		}
	}
	return f
}

// Statement returns the indexed statement for a hash.
func (f *RefinementFilter) Statement(h model.Hash) (*model.Statement, bool) {
	s, ok := f.stmts[h]
	return s, ok
}

// Malformed lists the hashes excluded from the index at build time.
func (f *RefinementFilter) Malformed() []model.Hash {
	return f.malformed
}

// LessSpecific returns the hashes of statements the query might refine.
func (f *RefinementFilter) LessSpecific(s *model.Statement) map[model.Hash]bool {
	return f.candidates(s, LessSpecific)
}

// MoreSpecific returns the hashes of statements that might refine the query.
func (f *RefinementFilter) MoreSpecific(s *model.Statement) map[model.Hash]bool {
	return f.candidates(s, MoreSpecific)
}

// candidates computes, per role, which indexed keys are ontologically
// compatible with the query's keys in the given direction, unions the
// statements carrying any of them, then intersects across roles: a true
// candidate must be consistent with every role simultaneously. A statement
// type absent from the index yields an empty set.
func (f *RefinementFilter) candidates(s *model.Statement, dir Direction) map[model.Hash]bool {
	byRole, ok := f.forward[s.Type]
	if !ok {
		return nil
	}
	specs, ok := model.RoleTable(s.Type)
	if !ok {
		return nil
	}

	var result map[model.Hash]bool
	for _, spec := range specs {
		byKey := byRole[spec.Name]
		roleHashes := make(map[model.Hash]bool)
		for _, key := range s.RoleKeys(spec.Name) {
			for h := range byKey[key] {
				roleHashes[h] = true
			}
			switch dir {
			case LessSpecific:
				// Anything with an unconstrained slot here is more general.
				for h := range byKey[model.KeyNone] {
					roleHashes[h] = true
				}
				for ref := range f.closure(key, dir) {
					k := model.AgentKey{Namespace: ref.Namespace, ID: ref.ID}
					for h := range byKey[k] {
						roleHashes[h] = true
					}
				}
			case MoreSpecific:
				if key.IsNone() {
					// An unconstrained slot is matched by every observed key.
					for _, hashes := range byKey {
						for h := range hashes {
							roleHashes[h] = true
						}
					}
					continue
				}
				for ref := range f.closure(key, dir) {
					k := model.AgentKey{Namespace: ref.Namespace, ID: ref.ID}
					for h := range byKey[k] {
						roleHashes[h] = true
					}
				}
			}
		}
		if result == nil {
			result = roleHashes
			continue
		}
		for h := range result {
			if !roleHashes[h] {
				delete(result, h)
			}
		}
		if len(result) == 0 {
			return nil
		}
	}
	delete(result, s.ShallowHash())
	return result
}

// closure fetches the ontology closure of a key in the given direction. Keys
// outside the ontology (name fallbacks, the none sentinel) and failed
// lookups both yield an empty closure; a bad ontology entry degrades that
// key to exact-match-only instead of failing the run.
func (f *RefinementFilter) closure(key model.AgentKey, dir Direction) map[ontology.Ref]bool {
	if !key.Grounded() {
		return nil
	}
	var (
		refs map[ontology.Ref]bool
		err  error
	)
	if dir == LessSpecific {
		refs, err = f.onto.Ancestors(key.Namespace, key.ID)
	} else {
		refs, err = f.onto.Descendants(key.Namespace, key.ID)
	}
	if err != nil {
		logger.Logger.Debugw("ontology lookup failed, treating as empty closure",
			"key", key.String(), "error", err)
		return nil
	}
	return refs
}
