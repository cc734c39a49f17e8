// Package extract ingests statement corpora produced by upstream extractors
// and databases. The engine itself never extracts statements from text; it
// consumes the flat record format those systems emit.
package extract

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/sorgerlab/indra-sub002/internal/logger"
	"github.com/sorgerlab/indra-sub002/internal/model"
)

// ReadCorpus decodes a JSON array of flat statement records. Statement order
// is preserved: among exact duplicates, the first-seen copy becomes the
// deduplication representative downstream.
//
// Records that cannot be decoded against their type's role table are logged
// and skipped (returned in the skipped count); a syntactically broken stream
// is an error. Statements of unknown types decode fine and flow through the
// corpus untouched, they just never participate in refinement.
func ReadCorpus(r io.Reader) (stmts []*model.Statement, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, errors.Wrap(err, "decode corpus")
	}

	stmts = make([]*model.Statement, 0, len(raw))
	for i, rec := range raw {
		var s model.Statement
		if err := json.Unmarshal(rec, &s); err != nil {
			logger.Logger.Warnw("skipping undecodable statement record",
				"index", i, "error", err)
			skipped++
			continue
		}
		stmts = append(stmts, &s)
	}
	return stmts, skipped, nil
}
