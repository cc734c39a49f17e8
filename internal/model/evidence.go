package model

// Evidence represents one piece of provenance for a statement: which reader
// or database produced it and from what text. Deduplication merges evidence
// lists across statements with equal hashes; individual records are never
// altered or discarded.
type Evidence struct {
	Source      string            `json:"source"`                // Extractor or database name (e.g., "reach", "signor")
	Text        string            `json:"text,omitempty"`        // Supporting sentence, verbatim
	TextRefID   string            `json:"text_ref_id,omitempty"` // External literature identifier (e.g., PMID)
	Annotations map[string]string `json:"annotations,omitempty"` // Source-specific metadata, passed through untouched
}

// SourceKind classifies where evidence came from.
type SourceKind string

const (
	SourceKindReader   SourceKind = "reader"   // Machine-reading NLP system
	SourceKindDatabase SourceKind = "database" // Curated interaction database
	SourceKindManual   SourceKind = "manual"   // Human-curated entry
)
