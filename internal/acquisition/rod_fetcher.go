package acquisition

import (
	"context"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// RodFetcher acquires snapshots by rendering the page in headless Chrome
// with stealth patches applied, for targets that assemble their content
// client-side or sit behind basic bot detection. The browser is launched
// lazily on first use and shared across fetches.
type RodFetcher struct {
	cfg    config.AcquisitionConfig
	logger zerolog.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodFetcher creates a RodFetcher. No browser is started until the
// first Fetch.
func NewRodFetcher(cfg config.AcquisitionConfig, logger zerolog.Logger) *RodFetcher {
	return &RodFetcher{
		cfg:    cfg,
		logger: logger.With().Str("component", "RodFetcher").Logger(),
	}
}

func (f *RodFetcher) ensureBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "launching headless browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, errorwrapper.WrapError(err, "connecting to headless browser")
	}

	f.logger.Info().Msg("Headless browser launched")
	f.browser = browser
	return browser, nil
}

// Fetch renders the page, waits for load, and extracts the
// selector-matched elements from the live DOM.
func (f *RodFetcher) Fetch(ctx context.Context, identity models.ResourceIdentity) (*models.Snapshot, error) {
	browser, err := f.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "creating stealth page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(identity.URL); err != nil {
		return nil, errorwrapper.WrapError(err, "navigating to "+identity.URL)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errorwrapper.WrapError(err, "waiting for page load of "+identity.URL)
	}

	rendered, err := page.HTML()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "reading rendered DOM of "+identity.URL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "parsing rendered HTML from "+identity.URL)
	}

	snapshot := extractSnapshot(doc, identity)
	f.logger.Debug().
		Str("identity", identity.String()).
		Int("match_count", snapshot.MatchCount).
		Msg("Rendered snapshot acquired")

	return snapshot, nil
}

// Close shuts the shared browser down. Safe to call when no browser was
// ever launched.
func (f *RodFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}
