// Package ontology provides the read-only concept-hierarchy oracle consumed
// by the preassembly engine: a client interface for ancestor/descendant
// closure queries, an in-memory DAG implementation loadable from YAML
// snapshots, a memoizing wrapper, and a rate-limited snapshot fetcher.
//
// The engine never constructs or mutates the ontology; every implementation
// of Client must tolerate concurrent readers once built.
package ontology

// Ref identifies a concept as a (namespace, identifier) pair.
type Ref struct {
	Namespace string `json:"namespace" yaml:"ns"`
	ID        string `json:"id" yaml:"id"`
}

// String renders the ref as "namespace:id".
func (r Ref) String() string {
	return r.Namespace + ":" + r.ID
}

// Client answers transitive closure queries over the concept hierarchy.
//
// Both methods are total over unknown concepts: a namespace/id pair the
// ontology has never seen yields an empty set and a nil error. A non-nil
// error means the lookup itself failed; callers in the refinement path
// absorb it as "no closure known" rather than aborting the run.
type Client interface {
	// Ancestors returns every concept reachable by walking refinement
	// edges upward from (ns, id), excluding the concept itself.
	Ancestors(ns, id string) (map[Ref]bool, error)

	// Descendants returns every concept from which (ns, id) is reachable
	// by walking refinement edges upward, excluding the concept itself.
	Descendants(ns, id string) (map[Ref]bool, error)
}
