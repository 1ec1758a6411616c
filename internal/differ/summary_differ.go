package differ

import (
	"fmt"

	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SummaryDiffer derives human-readable change descriptions from the coarse
// summary metadata of two fingerprint records. It never reconstructs a
// precise patch; the output is an ordered list of short, operator-facing
// lines.
type SummaryDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewSummaryDiffer creates a SummaryDiffer.
func NewSummaryDiffer() *SummaryDiffer {
	return &SummaryDiffer{dmp: diffmatchpatch.New()}
}

// Describe compares previous and current summaries and returns delta
// descriptions. Identical summaries with differing hashes still produce
// one generic line, so a CHANGED alert never carries an empty delta list.
func (sd *SummaryDiffer) Describe(previous, current models.SummaryMetadata) []string {
	var deltas []string

	if previous.ElementCount != current.ElementCount {
		deltas = append(deltas, fmt.Sprintf("matched element count changed: %d -> %d",
			previous.ElementCount, current.ElementCount))
	}

	if previous.TextLength != current.TextLength {
		deltas = append(deltas, fmt.Sprintf("text length changed: %d -> %d characters",
			previous.TextLength, current.TextLength))
	}

	if previous.TextPreview != current.TextPreview {
		inserted, deleted := sd.previewChurn(previous.TextPreview, current.TextPreview)
		deltas = append(deltas, fmt.Sprintf("text content changed (+%d/-%d characters in preview)",
			inserted, deleted))
	}

	if len(deltas) == 0 {
		deltas = append(deltas, "content changed outside the tracked summary (attributes or structure)")
	}

	return deltas
}

// previewChurn counts inserted and deleted characters between the two
// bounded text previews.
func (sd *SummaryDiffer) previewChurn(before, after string) (inserted, deleted int) {
	diffs := sd.dmp.DiffMain(before, after, false)
	diffs = sd.dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	return inserted, deleted
}
