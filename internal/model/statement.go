package model

import (
	"github.com/cockroachdb/errors"
)

// StatementType tags one of the closed set of relation shapes the engine
// understands. Refinement is only ever checked between statements of the
// same type.
type StatementType string

const (
	TypePhosphorylation   StatementType = "phosphorylation"   // Enzyme phosphorylates substrate, optionally at residue/position
	TypeDephosphorylation StatementType = "dephosphorylation" // Enzyme removes a phosphate from substrate
	TypeActivation        StatementType = "activation"        // Subject increases an activity of object
	TypeInhibition        StatementType = "inhibition"        // Subject decreases an activity of object
	TypeComplex           StatementType = "complex"           // Symmetric n-ary complex formation
	TypeActiveForm        StatementType = "active_form"       // Unary: agent state implies an activity
)

// Role names a slot in a statement's role assignment.
type Role string

const (
	RoleEnzyme    Role = "enz"
	RoleSubstrate Role = "sub"
	RoleSubject   Role = "subj"
	RoleObject    Role = "obj"
	RoleMembers   Role = "members"
	RoleAgent     Role = "agent"
)

// RoleSpec describes one slot of a statement shape: its name, whether it
// holds a list of agents, and whether a single-valued slot may be empty.
type RoleSpec struct {
	Name     Role
	List     bool
	Optional bool
}

// roleTables is the single source of truth for the shape of every statement
// type. Both the candidate filter and the confirmation filter derive their
// single-valued vs list-valued handling from this table; extending a type
// with a new list role must happen here and nowhere else.
var roleTables = map[StatementType][]RoleSpec{
	TypePhosphorylation:   {{Name: RoleEnzyme, Optional: true}, {Name: RoleSubstrate}},
	TypeDephosphorylation: {{Name: RoleEnzyme, Optional: true}, {Name: RoleSubstrate}},
	TypeActivation:        {{Name: RoleSubject}, {Name: RoleObject}},
	TypeInhibition:        {{Name: RoleSubject}, {Name: RoleObject}},
	TypeComplex:           {{Name: RoleMembers, List: true}},
	TypeActiveForm:        {{Name: RoleAgent}},
}

// paramTables lists, in canonical order, the scalar parameters each
// statement type may carry. A parameter left unset means "unconstrained".
var paramTables = map[StatementType][]string{
	TypePhosphorylation:   {"residue", "position"},
	TypeDephosphorylation: {"residue", "position"},
	TypeActivation:        {"activity"},
	TypeInhibition:        {"activity"},
	TypeComplex:           nil,
	TypeActiveForm:        {"activity", "is_active"},
}

// RoleTable returns the ordered role specs for a statement type. The second
// return is false for types outside the closed set.
func RoleTable(t StatementType) ([]RoleSpec, bool) {
	specs, ok := roleTables[t]
	return specs, ok
}

// ParamTable returns the ordered scalar parameter names for a statement type.
func ParamTable(t StatementType) []string {
	return paramTables[t]
}

// KnownType reports whether t is one of the closed set of statement shapes.
func KnownType(t StatementType) bool {
	_, ok := roleTables[t]
	return ok
}

// RoleValue holds the agent assignment of one role. Exactly one of Agent and
// Members is meaningful, per the role's spec: single-valued roles use Agent
// (nil meaning absent), list-valued roles use Members (possibly empty,
// meaning unconstrained).
type RoleValue struct {
	Agent   *Agent
	Members []*Agent
}

// Statement is a typed assertion about an interaction between agents, with
// attached provenance. Its identity (hash) depends only on the type tag, the
// role assignment and the scalar parameters — never on evidence, belief or
// support edges.
type Statement struct {
	Type    StatementType      `json:"type"`
	Roles   map[Role]RoleValue `json:"-"`
	Params  map[string]string  `json:"params,omitempty"`
	Evidence []Evidence        `json:"evidence,omitempty"`

	// Belief is computed upstream; this engine reads and carries it but
	// never calculates it.
	Belief float64 `json:"belief,omitempty"`

	// Supports and SupportedBy reference other statements by content hash
	// and are populated exclusively by the preassembly orchestrator.
	// A statement supports the more general statements it refines.
	Supports    []Hash `json:"supports,omitempty"`
	SupportedBy []Hash `json:"supported_by,omitempty"`

	hash Hash // lazily computed, see ShallowHash
}

// NewStatement creates a statement of the given type with an empty role
// assignment.
func NewStatement(t StatementType) *Statement {
	return &Statement{
		Type:  t,
		Roles: make(map[Role]RoleValue),
	}
}

// SetAgent assigns a single-valued role.
func (s *Statement) SetAgent(role Role, a *Agent) *Statement {
	s.Roles[role] = RoleValue{Agent: a}
	return s
}

// SetMembers assigns a list-valued role.
func (s *Statement) SetMembers(role Role, members ...*Agent) *Statement {
	s.Roles[role] = RoleValue{Members: members}
	return s
}

// SetParam sets a scalar parameter such as a modification residue.
func (s *Statement) SetParam(name, value string) *Statement {
	if s.Params == nil {
		s.Params = make(map[string]string)
	}
	s.Params[name] = value
	return s
}

// RoleKeys returns the AgentKeys a role contributes for indexing and
// refinement. A single-valued role contributes exactly one key (KeyNone when
// the slot is empty); a list-valued role contributes one key per member, or
// the KeyNone sentinel when it has no members — absence of agents in a role
// is itself maximally general.
func (s *Statement) RoleKeys(role Role) []AgentKey {
	rv := s.Roles[role]
	specs, ok := roleTables[s.Type]
	if !ok {
		return nil
	}
	for _, spec := range specs {
		if spec.Name != role {
			continue
		}
		if !spec.List {
			return []AgentKey{KeyOf(rv.Agent)}
		}
		if len(rv.Members) == 0 {
			return []AgentKey{KeyNone}
		}
		keys := make([]AgentKey, 0, len(rv.Members))
		for _, m := range rv.Members {
			keys = append(keys, KeyOf(m))
		}
		return keys
	}
	return nil
}

// Validate checks the role assignment against the type's role table. A
// statement of an unknown type, or one missing a required single-valued
// role, is malformed: it stays in the corpus but is excluded from the
// refinement pass.
func (s *Statement) Validate() error {
	specs, ok := roleTables[s.Type]
	if !ok {
		return errors.Newf("unknown statement type %q", s.Type)
	}
	for _, spec := range specs {
		rv := s.Roles[spec.Name]
		if spec.List {
			for i, m := range rv.Members {
				if m == nil {
					return errors.Newf("%s: nil agent at %s[%d]", s.Type, spec.Name, i)
				}
			}
			continue
		}
		if rv.Agent == nil && !spec.Optional {
			return errors.Newf("%s: required role %s is empty", s.Type, spec.Name)
		}
	}
	for name := range s.Params {
		known := false
		for _, p := range paramTables[s.Type] {
			if p == name {
				known = true
				break
			}
		}
		if !known {
			return errors.Newf("%s: unknown parameter %q", s.Type, name)
		}
	}
	return nil
}

// Param returns the named scalar parameter and whether it is set.
func (s *Statement) Param(name string) (string, bool) {
	v, ok := s.Params[name]
	return v, ok
}
