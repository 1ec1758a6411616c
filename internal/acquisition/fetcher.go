package acquisition

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesentry/pagesentry/internal/models"
	"golang.org/x/net/html"
)

// Fetcher is the snapshot acquisition capability. Implementations own
// navigation, rendering, and anti-detection; callers only see the
// extracted Snapshot or an error.
type Fetcher interface {
	// Fetch produces a fresh Snapshot of the identity. Each call is a
	// self-contained, idempotent read bounded by the context.
	Fetch(ctx context.Context, identity models.ResourceIdentity) (*models.Snapshot, error)
}

// extractSnapshot applies the identity's selector to a parsed document and
// builds the ordered element sequence. An empty selector observes the
// document body.
func extractSnapshot(doc *goquery.Document, identity models.ResourceIdentity) *models.Snapshot {
	selector := identity.Selector
	if selector == "" {
		selector = "body"
	}

	matches := doc.Find(selector)
	elements := make([]models.ElementSnapshot, 0, matches.Length())

	matches.Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == nil || node.Type != html.ElementNode {
			return
		}

		var attrs map[string]string
		if len(node.Attr) > 0 {
			attrs = make(map[string]string, len(node.Attr))
			for _, a := range node.Attr {
				attrs[a.Key] = a.Val
			}
		}

		childCount := 0
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode {
				childCount++
			}
		}

		elements = append(elements, models.ElementSnapshot{
			Tag:        node.Data,
			Text:       strings.TrimSpace(sel.Text()),
			Attributes: attrs,
			ChildCount: childCount,
		})
	})

	return &models.Snapshot{
		Identity:   identity,
		FetchedAt:  time.Now(),
		Elements:   elements,
		MatchCount: matches.Length(),
	}
}
