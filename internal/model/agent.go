package model

// Agent represents a participant entity in a statement, optionally grounded
// to one or more ontology concepts. Agents are constructed by upstream
// extractors and are never mutated by the engine.
type Agent struct {
	Name       string            `json:"name"`                 // Literal entity name as reported by the extractor
	Groundings map[string]string `json:"groundings,omitempty"` // Ontology namespace -> concept identifier
}

// NewAgent creates an ungrounded agent with the given name.
func NewAgent(name string) *Agent {
	return &Agent{Name: name}
}

// GroundedAgent creates an agent grounded to a single ontology concept.
func GroundedAgent(name, namespace, id string) *Agent {
	return &Agent{
		Name:       name,
		Groundings: map[string]string{namespace: id},
	}
}

// NamespaceName is the fallback namespace for agents without any grounding.
// Two ungrounded agents are comparable only through their literal names.
const NamespaceName = "NAME"

// groundingPriority orders namespaces by specificity preference when an agent
// carries more than one grounding. Family/complex namespaces come first so
// that refinement traversal sees the concept the curators considered primary.
var groundingPriority = []string{"FPLX", "HGNC", "UP", "CHEBI", "GO", "MESH"}

// AgentKey is the canonical comparison key for an agent: its preferred
// (namespace, id) grounding, or a name-based fallback when ungrounded.
type AgentKey struct {
	Namespace string `json:"namespace"`
	ID        string `json:"id"`
}

// KeyNone is the sentinel key for an absent agent (an unfilled optional role,
// e.g. an unknown enzyme). Absence is treated as maximally general.
var KeyNone = AgentKey{Namespace: "-", ID: "-"}

// IsNone reports whether the key is the absent-agent sentinel.
func (k AgentKey) IsNone() bool {
	return k == KeyNone
}

// Grounded reports whether the key refers to an ontology concept rather than
// a literal name or the absent-agent sentinel.
func (k AgentKey) Grounded() bool {
	return !k.IsNone() && k.Namespace != NamespaceName
}

// KeyOf derives the canonical AgentKey for an agent. A nil agent yields
// KeyNone. Grounded agents use the highest-priority namespace present;
// groundings in namespaces outside the priority list are only used if no
// prioritized namespace matches, picking the lexicographically smallest
// namespace so the key is deterministic.
func KeyOf(a *Agent) AgentKey {
	if a == nil {
		return KeyNone
	}
	for _, ns := range groundingPriority {
		if id, ok := a.Groundings[ns]; ok && id != "" {
			return AgentKey{Namespace: ns, ID: id}
		}
	}
	var best AgentKey
	for ns, id := range a.Groundings {
		if id == "" {
			continue
		}
		if best.Namespace == "" || ns < best.Namespace {
			best = AgentKey{Namespace: ns, ID: id}
		}
	}
	if best.Namespace != "" {
		return best
	}
	return AgentKey{Namespace: NamespaceName, ID: a.Name}
}

// String renders the key as "namespace:id", the form used in hash matter
// strings and log fields.
func (k AgentKey) String() string {
	return k.Namespace + ":" + k.ID
}
