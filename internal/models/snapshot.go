package models

import "time"

// ElementSnapshot is one extracted element from the monitored resource:
// its tag name, trimmed text content, attributes, and structural metadata.
type ElementSnapshot struct {
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
	ChildCount int               `json:"child_count"`
}

// Snapshot is one raw observation of the monitored resource at a point in
// time: the ordered sequence of elements matched by the identity's
// selector. A Snapshot is produced fresh on every acquisition attempt and
// owned by the fingerprinting call that consumes it; it is never persisted
// beyond the optional debug artifact.
type Snapshot struct {
	Identity   ResourceIdentity  `json:"identity"`
	FetchedAt  time.Time         `json:"fetched_at"`
	Elements   []ElementSnapshot `json:"elements"`
	MatchCount int               `json:"match_count"`
}

// Empty reports whether the selector matched nothing. The fingerprint
// extractor turns this into its "empty" sentinel rather than an error.
func (s *Snapshot) Empty() bool {
	return len(s.Elements) == 0
}
