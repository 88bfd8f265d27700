package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMetadataSnapshot(t *testing.T) {
	valid := []byte(`{
		"window_start": "01/07/2026",
		"window_end": "07/07/2026",
		"total_count": 1,
		"companies": [
			{"name": "ACME TRADING LTD", "file_number": "C12345", "category": "DOMESTIC",
			 "incorporated": "02/07/2026", "nature": "PRIVATE", "status": "Live"}
		]
	}`)
	assert.NoError(t, Validate(MetadataSnapshot, valid))
}

func TestValidateMetadataSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bad date format", doc: `{"window_start": "2026-07-01", "window_end": "07/07/2026", "companies": []}`},
		{name: "missing companies", doc: `{"window_start": "01/07/2026", "window_end": "07/07/2026"}`},
		{name: "nameless company", doc: `{"window_start": "01/07/2026", "window_end": "07/07/2026", "companies": [{"status": "Live"}]}`},
		{name: "unknown field", doc: `{"window_start": "01/07/2026", "window_end": "07/07/2026", "companies": [], "extra": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(MetadataSnapshot, []byte(tt.doc))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateScratchMetadata(t *testing.T) {
	valid := []byte(`{
		"company_id": "7b9a3ce2-6f3d-4a25-9f6e-8a1f2f3c4d5e",
		"company_name": "ACME TRADING LTD",
		"category": "DOMESTIC",
		"nature": "PRIVATE",
		"size_bytes": 2048,
		"materialized_at": "2026-08-29T10:00:00Z"
	}`)
	assert.NoError(t, Validate(ScratchMetadata, valid))

	err := Validate(ScratchMetadata, []byte(`{"company_name": "ACME TRADING LTD"}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("no_such_schema", []byte(`{}`))
	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
}
