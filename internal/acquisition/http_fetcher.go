package acquisition

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// HTTPFetcher acquires snapshots with a plain HTTP GET and server-rendered
// HTML parsing. It is the default mode; pages that assemble their content
// client-side need the headless fetcher instead.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewHTTPFetcher creates an HTTPFetcher from acquisition configuration.
// Per-request deadlines come from the caller's context, not the client.
func NewHTTPFetcher(cfg config.AcquisitionConfig, logger zerolog.Logger) *HTTPFetcher {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	return &HTTPFetcher{
		client:    &http.Client{Transport: transport},
		userAgent: cfg.UserAgent,
		logger:    logger.With().Str("component", "HTTPFetcher").Logger(),
	}
}

// Fetch performs one GET and extracts the selector-matched elements.
func (f *HTTPFetcher) Fetch(ctx context.Context, identity models.ResourceIdentity) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identity.URL, nil)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "creating request for "+identity.URL)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "executing request for "+identity.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, string(body), identity.URL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "parsing HTML from "+identity.URL)
	}

	snapshot := extractSnapshot(doc, identity)
	f.logger.Debug().
		Str("identity", identity.String()).
		Int("match_count", snapshot.MatchCount).
		Msg("Snapshot acquired")

	return snapshot, nil
}
