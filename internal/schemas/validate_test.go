package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume_ConformingRecord(t *testing.T) {
	record := map[string]any{
		"name":   "Ada Lovelace",
		"email":  "ada@example.com",
		"skills": map[string]any{"Languages": []any{"Go"}},
		"experience": []any{
			map[string]any{
				"company":          "Acme",
				"responsibilities": []any{"Built things"},
			},
		},
	}

	assert.NoError(t, ValidateResume(record))
}

func TestValidateResume_WrongTypeFlaggedWithField(t *testing.T) {
	record := map[string]any{
		"name":       42,
		"experience": "not a list",
	}

	err := ValidateResume(record)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)

	var fields []string
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "experience")
}

func TestValidateResume_UnknownKeysTolerated(t *testing.T) {
	record := map[string]any{
		"name":    "Ada",
		"hobbies": []any{"chess"},
	}

	assert.NoError(t, ValidateResume(record))
}

func TestValidateResumeJSON_RawBytes(t *testing.T) {
	assert.NoError(t, ValidateResumeJSON([]byte(`{"name": "Ada"}`)))
	assert.Error(t, ValidateResumeJSON([]byte(`{"name": 42}`)))
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "Invalid type"},
	}}
	assert.Contains(t, err.Error(), "name: Invalid type")
}
