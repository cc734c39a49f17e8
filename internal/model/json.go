package model

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// statementRecord is the flat wire form of a statement:
//
//	{"type": ..., "roles": {role: agent|[agents]|null}, "params": {...},
//	 "evidence": [...], "belief": ..., "supports": [...], "supported_by": [...]}
//
// Role values are encoded per the type's role table: single-valued roles as
// an agent object or null, list-valued roles as an array.
type statementRecord struct {
	Type        StatementType           `json:"type"`
	Roles       map[Role]json.RawMessage `json:"roles,omitempty"`
	Params      map[string]string       `json:"params,omitempty"`
	Evidence    []Evidence              `json:"evidence,omitempty"`
	Belief      float64                 `json:"belief,omitempty"`
	Supports    []Hash                  `json:"supports,omitempty"`
	SupportedBy []Hash                  `json:"supported_by,omitempty"`
}

// MarshalJSON encodes the statement in the flat record format.
func (s *Statement) MarshalJSON() ([]byte, error) {
	rec := statementRecord{
		Type:        s.Type,
		Params:      s.Params,
		Evidence:    s.Evidence,
		Belief:      s.Belief,
		Supports:    s.Supports,
		SupportedBy: s.SupportedBy,
	}
	specs, ok := roleTables[s.Type]
	if ok && len(s.Roles) > 0 {
		rec.Roles = make(map[Role]json.RawMessage, len(specs))
		for _, spec := range specs {
			rv := s.Roles[spec.Name]
			var (
				raw []byte
				err error
			)
			if spec.List {
				members := rv.Members
				if members == nil {
					members = []*Agent{}
				}
				raw, err = json.Marshal(members)
			} else {
				raw, err = json.Marshal(rv.Agent)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "marshal role %s", spec.Name)
			}
			rec.Roles[spec.Name] = raw
		}
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes the flat record format, validating role values
// against the type's role table. Records of unknown types decode with an
// empty role assignment; the refinement pass treats them as having no
// candidates rather than failing ingestion.
func (s *Statement) UnmarshalJSON(data []byte) error {
	var rec statementRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	s.Type = rec.Type
	s.Params = rec.Params
	s.Evidence = rec.Evidence
	s.Belief = rec.Belief
	s.Supports = rec.Supports
	s.SupportedBy = rec.SupportedBy
	s.Roles = make(map[Role]RoleValue)
	s.hash = ""

	specs, ok := roleTables[rec.Type]
	if !ok {
		return nil
	}
	for name := range rec.Roles {
		known := false
		for _, spec := range specs {
			if spec.Name == name {
				known = true
				break
			}
		}
		if !known {
			return errors.Newf("%s: unknown role %q", rec.Type, name)
		}
	}
	for _, spec := range specs {
		raw, present := rec.Roles[spec.Name]
		if !present || string(raw) == "null" {
			s.Roles[spec.Name] = RoleValue{}
			continue
		}
		if spec.List {
			var members []*Agent
			if err := json.Unmarshal(raw, &members); err != nil {
				return errors.Wrapf(err, "%s: role %s expects an agent list", rec.Type, spec.Name)
			}
			s.Roles[spec.Name] = RoleValue{Members: members}
			continue
		}
		var a Agent
		if err := json.Unmarshal(raw, &a); err != nil {
			return errors.Wrapf(err, "%s: role %s expects a single agent", rec.Type, spec.Name)
		}
		s.Roles[spec.Name] = RoleValue{Agent: &a}
	}
	return nil
}
