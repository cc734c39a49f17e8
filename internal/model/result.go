package model

import "time"

// Result is the complete output of a preassembly run: the deduplicated
// corpus with populated support edges, the derived top-level view, and the
// edge list itself as plain data so the whole result round-trips through
// JSON without language-level references.
type Result struct {
	PreassembledAt time.Time `json:"preassembled_at"` // When the run completed

	Statements []*Statement `json:"statements"` // Deduplicated corpus, one per distinct hash

	// TopLevel lists the hashes of statements whose supports set is empty:
	// the maximally specific representative of each refinement chain.
	TopLevel []Hash `json:"top_level"`

	Links []SupportLink `json:"links,omitempty"` // Confirmed refinement edges

	Stats Stats `json:"stats"` // Run statistics
}

// SupportLink is one confirmed refinement edge: the more specific statement
// supports the more general one it refines. Statements are referenced by
// content hash, keeping the edge list serializable and order-independent.
type SupportLink struct {
	Supporting Hash `json:"supporting"` // More specific statement
	Supported  Hash `json:"supported"`  // More general statement
}

// Stats summarizes what preassembly did to the corpus.
type Stats struct {
	Input      int `json:"input"`       // Raw statements ingested
	Unique     int `json:"unique"`      // Distinct hashes after deduplication
	Duplicates int `json:"duplicates"`  // Statements merged away (input - unique)
	Malformed  int `json:"malformed"`   // Statements excluded from the refinement pass
	Links      int `json:"links"`       // Confirmed refinement edges
	TopLevel   int `json:"top_level"`   // Statements with no supports edge
	ByType     map[StatementType]int `json:"by_type,omitempty"` // Unique statements per type
}
