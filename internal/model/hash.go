package model

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash is the content-based identity of a statement: hex-encoded SHA-256 of
// its matter string. Equal hashes are trusted as semantic equality by the
// deduplicator, so the matter string must cover every identity-bearing field
// and nothing else.
type Hash string

// MatterString builds the canonical identity string for a statement: the
// type tag, each role's AgentKeys in role-table order (keys within a
// list-valued role sorted, since complex membership is unordered), and each
// scalar parameter in param-table order with unset parameters rendered as
// the "-" placeholder. Evidence, belief and support edges never appear here.
func (s *Statement) MatterString() string {
	var b strings.Builder
	b.WriteString(string(s.Type))
	specs, ok := roleTables[s.Type]
	if !ok {
		// Unknown types still get a stable, distinct identity.
		return b.String()
	}
	for _, spec := range specs {
		b.WriteByte('|')
		b.WriteString(string(spec.Name))
		b.WriteByte('=')
		keys := s.RoleKeys(spec.Name)
		if spec.List {
			sorted := make([]string, 0, len(keys))
			for _, k := range keys {
				sorted = append(sorted, k.String())
			}
			sort.Strings(sorted)
			b.WriteString(strings.Join(sorted, ","))
			continue
		}
		for _, k := range keys {
			b.WriteString(k.String())
		}
	}
	for _, name := range paramTables[s.Type] {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		if v, ok := s.Params[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ShallowHash returns the statement's content hash, computing and caching it
// on first use. "Shallow" because evidence and support structure are
// excluded: two statements with the same hash are interchangeable duplicates
// regardless of where they were extracted from.
func (s *Statement) ShallowHash() Hash {
	if s.hash != "" {
		return s.hash
	}
	sum := sha256.Sum256([]byte(s.MatterString()))
	s.hash = Hash(hex.EncodeToString(sum[:]))
	return s.hash
}
