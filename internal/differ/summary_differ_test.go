package differ

import (
	"testing"

	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_ElementCountChange(t *testing.T) {
	sd := NewSummaryDiffer()

	deltas := sd.Describe(
		models.SummaryMetadata{ElementCount: 3, TextLength: 10, TextPreview: "abc"},
		models.SummaryMetadata{ElementCount: 5, TextLength: 10, TextPreview: "abc"},
	)

	require.Len(t, deltas, 1)
	assert.Contains(t, deltas[0], "3 -> 5")
}

func TestDescribe_TextChange(t *testing.T) {
	sd := NewSummaryDiffer()

	deltas := sd.Describe(
		models.SummaryMetadata{ElementCount: 1, TextLength: 11, TextPreview: "hello world"},
		models.SummaryMetadata{ElementCount: 1, TextLength: 11, TextPreview: "hello earth"},
	)

	require.Len(t, deltas, 1)
	assert.Contains(t, deltas[0], "text content changed")
}

func TestDescribe_MultipleChangesAreOrdered(t *testing.T) {
	sd := NewSummaryDiffer()

	deltas := sd.Describe(
		models.SummaryMetadata{ElementCount: 2, TextLength: 5, TextPreview: "aaaaa"},
		models.SummaryMetadata{ElementCount: 3, TextLength: 7, TextPreview: "bbbbbbb"},
	)

	require.Len(t, deltas, 3)
	assert.Contains(t, deltas[0], "element count")
	assert.Contains(t, deltas[1], "text length")
	assert.Contains(t, deltas[2], "text content")
}

func TestDescribe_IdenticalSummariesStillDescribeSomething(t *testing.T) {
	sd := NewSummaryDiffer()

	summary := models.SummaryMetadata{ElementCount: 1, TextLength: 3, TextPreview: "abc"}
	deltas := sd.Describe(summary, summary)

	require.Len(t, deltas, 1,
		"a hash change with identical summaries must still yield a delta line")
	assert.Contains(t, deltas[0], "attributes or structure")
}
