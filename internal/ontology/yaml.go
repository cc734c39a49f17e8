package ontology

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of an ontology: a flat typed edge list, plus
// the optional set of relations refinement traversal should follow.
type Snapshot struct {
	Relations []string       `yaml:"relations,omitempty"`
	Edges     []SnapshotEdge `yaml:"edges"`
}

// SnapshotEdge is one child-to-parent edge in a snapshot file.
type SnapshotEdge struct {
	NS       string `yaml:"ns"`
	ID       string `yaml:"id"`
	Rel      string `yaml:"rel"`
	ParentNS string `yaml:"parent_ns"`
	ParentID string `yaml:"parent_id"`
}

// LoadYAML reads a snapshot file and builds the graph. Snapshot-declared
// relations win; fallbackRelations apply only when the file declares none.
func LoadYAML(path string, fallbackRelations ...string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read ontology snapshot")
	}
	return ParseYAML(data, fallbackRelations...)
}

// ParseYAML builds a graph from snapshot file contents.
func ParseYAML(data []byte, fallbackRelations ...string) (*Graph, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "parse ontology snapshot")
	}
	relations := snap.Relations
	if len(relations) == 0 {
		relations = fallbackRelations
	}
	g := NewGraph(relations...)
	for i, e := range snap.Edges {
		if e.NS == "" || e.ID == "" || e.ParentNS == "" || e.ParentID == "" {
			return nil, errors.Newf("ontology snapshot: incomplete edge at index %d", i)
		}
		rel := e.Rel
		if rel == "" {
			rel = "isa"
		}
		g.AddEdge(
			Ref{Namespace: e.NS, ID: e.ID},
			Ref{Namespace: e.ParentNS, ID: e.ParentID},
			rel,
		)
	}
	return g, nil
}
