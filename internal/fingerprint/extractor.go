package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// canonicalAttribute is one name/value pair in name-sorted order.
type canonicalAttribute struct {
	Name  string `json:"n"`
	Value string `json:"v"`
}

// canonicalElement is the hashable form of one matched element. Attributes
// are an ordered slice, not a map, so the JSON serialization is
// deterministic across runs.
type canonicalElement struct {
	Tag        string               `json:"tag"`
	Text       string               `json:"text"`
	Attributes []canonicalAttribute `json:"attrs,omitempty"`
	ChildCount int                  `json:"children"`
}

// Result is the outcome of fingerprinting one snapshot. Empty marks the
// "selector matched nothing" sentinel; the hash is unset in that case.
type Result struct {
	Empty   bool
	Hash    string
	Summary models.SummaryMetadata
}

// Extractor maps a raw snapshot to a canonical form and a stable SHA-256
// digest suitable for equality comparison across runs. Canonicalization is
// order-preserving on element order and name-sorted on attributes.
type Extractor struct {
	cfg      config.FingerprintConfig
	logger   zerolog.Logger
	volatile map[string]struct{}
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg config.FingerprintConfig, logger zerolog.Logger) *Extractor {
	volatile := make(map[string]struct{})
	for _, name := range cfg.EffectiveVolatileAttributes() {
		volatile[strings.ToLower(name)] = struct{}{}
	}
	return &Extractor{
		cfg:      cfg,
		logger:   logger.With().Str("component", "FingerprintExtractor").Logger(),
		volatile: volatile,
	}
}

// Fingerprint canonicalizes the snapshot and computes its digest. A
// snapshot with zero matched elements yields the empty sentinel, not an
// error; the change detector classifies that as a not-found condition.
func (e *Extractor) Fingerprint(snapshot *models.Snapshot) (*Result, error) {
	if snapshot == nil {
		return nil, errorwrapper.NewError("snapshot is nil")
	}

	if snapshot.Empty() {
		e.logger.Debug().Str("identity", snapshot.Identity.String()).Msg("Selector matched no elements")
		return &Result{Empty: true}, nil
	}

	canonical := make([]canonicalElement, 0, len(snapshot.Elements))
	textLength := 0
	var textParts []string

	for _, el := range snapshot.Elements {
		ce := canonicalElement{
			Tag:        strings.ToLower(el.Tag),
			Text:       strings.TrimSpace(el.Text),
			Attributes: e.canonicalAttributes(el.Attributes),
			ChildCount: el.ChildCount,
		}
		canonical = append(canonical, ce)
		textLength += len(ce.Text)
		if ce.Text != "" {
			textParts = append(textParts, ce.Text)
		}
	}

	serialized, err := json.Marshal(canonical)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "serializing canonical snapshot")
	}

	digest := sha256.Sum256(serialized)
	hash := hex.EncodeToString(digest[:])

	result := &Result{
		Hash: hash,
		Summary: models.SummaryMetadata{
			ElementCount: len(canonical),
			TextLength:   textLength,
			TextPreview:  truncate(strings.Join(textParts, " "), e.cfg.TextPreviewLength),
		},
	}

	e.logger.Debug().
		Str("identity", snapshot.Identity.String()).
		Str("hash", hash).
		Int("element_count", result.Summary.ElementCount).
		Msg("Snapshot fingerprinted")

	return result, nil
}

// canonicalAttributes sorts attributes by name and, when ignore-minor-
// changes mode is on, drops deny-listed volatile attributes.
func (e *Extractor) canonicalAttributes(attrs map[string]string) []canonicalAttribute {
	if len(attrs) == 0 {
		return nil
	}

	out := make([]canonicalAttribute, 0, len(attrs))
	for name, value := range attrs {
		lower := strings.ToLower(name)
		if e.cfg.IgnoreMinorChanges {
			if _, excluded := e.volatile[lower]; excluded {
				continue
			}
		}
		out = append(out, canonicalAttribute{Name: lower, Value: value})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) == 0 {
		return nil
	}
	return out
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
