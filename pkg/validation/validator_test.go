package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fieldworks/maintenance-hub/pkg/util"
)

type sample struct {
	Name     string  `json:"name" validate:"required"`
	Date     string  `json:"scheduled_date" validate:"isodate"`
	Duration float64 `json:"duration" validate:"gt=0"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := New().Struct(sample{Date: "18/10/2026"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	assert.Equal(t, "is required", domainErr.Details["name"])
	assert.Equal(t, "must be a YYYY-MM-DD date", domainErr.Details["scheduled_date"])
	assert.Equal(t, "must be greater than 0", domainErr.Details["duration"])
}

func TestStructAcceptsValidPayload(t *testing.T) {
	assert.NoError(t, New().Struct(sample{Name: "CNC", Date: "2026-10-18", Duration: 1.5}))
	assert.NoError(t, New().Struct(sample{Name: "CNC", Duration: 0.5}))
}
