package scanerror

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceUnavailableError(t *testing.T) {
	err := &SourceUnavailableError{Source: "backup.xml", Err: os.ErrPermission}

	assert.Contains(t, err.Error(), "backup.xml")
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestExtractionError(t *testing.T) {
	cause := fmt.Errorf("invalid amount")
	err := &ExtractionError{Field: "amount", Value: ",,", Err: cause}

	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), `",,"`)
	assert.ErrorIs(t, err, cause)

	var extractErr *ExtractionError
	assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &extractErr)
	assert.Equal(t, "amount", extractErr.Field)
}
