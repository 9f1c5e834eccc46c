package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty object", data: `{}`},
		{
			name: "legacy record",
			data: `{"123":{"xp":450,"level":2,"totalMessages":12,"voiceTime":60000,"lastDaily":0,"joinedAt":1700000000000}}`,
		},
		{name: "partial record", data: `{"123":{"xp":5}}`},
		{name: "negative xp", data: `{"123":{"xp":-1}}`, wantErr: "/123/xp"},
		{name: "fractional voice time", data: `{"123":{"voiceTime":1.5}}`, wantErr: "/123/voiceTime"},
		{name: "record not an object", data: `{"123":42}`, wantErr: "/123"},
		{name: "array root", data: `[]`, wantErr: "(root)"},
		{name: "empty user id", data: `{"":{"xp":1}}`, wantErr: "validation failed"},
		{name: "not json", data: `{`, wantErr: "failed to parse JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	err := NewSchemaValidator().ValidateBytes([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	v := NewSchemaValidator().(*validator)
	require.NoError(t, v.ValidateBytes([]byte(`{}`), SnapshotSchema))
	require.NoError(t, v.ValidateBytes([]byte(`{"a":{"xp":1}}`), SnapshotSchema))
	assert.Len(t, v.schemas, 1)
}
