package e2etest

import (
	"fmt"

	"github.com/mitchellh/copystructure"

	"e2esource/internal/protocol"
)

var catalog = protocol.Catalog{
	Streams: []protocol.Stream{{
		Name: StreamName,
		JSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				ColumnName: map[string]any{"type": "string"},
			},
		},
		SupportedSyncModes:  []protocol.SyncMode{protocol.SyncModeFullRefresh, protocol.SyncModeIncremental},
		SourceDefinedCursor: true,
	}},
}

// Catalog returns a deep copy of the single-stream catalog; callers may
// mutate it freely.
func Catalog() (*protocol.Catalog, error) {
	cp, err := copystructure.Copy(catalog)
	if err != nil {
		return nil, fmt.Errorf("e2e-test: copy catalog: %w", err)
	}
	out := cp.(protocol.Catalog)
	return &out, nil
}

// Spec describes the accepted configuration.
func Spec() protocol.ConnectorSpec {
	return protocol.ConnectorSpec{
		ConnectionSpecification: map[string]any{
			"$schema":  "http://json-schema.org/draft-07/schema#",
			"title":    "E2E Test Source Spec",
			"type":     "object",
			"required": []string{keyThrowAfterN},
			"properties": map[string]any{
				keyThrowAfterN: map[string]any{
					"title":       "Throw After N Records",
					"description": "Number of records to emit before throwing an exception. Min 0.",
					"type":        "integer",
					"minimum":     0,
				},
			},
		},
		SupportsIncremental: true,
	}
}
