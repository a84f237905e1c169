package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

const maxDescriptionLength = 300

// Service fetches a venue's own website and extracts a short description
// for the detail page. Enrichment is best-effort: a venue without a usable
// website simply keeps an empty description.
type Service struct {
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewService creates a new enrichment service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// FetchDescription downloads the website's landing page and returns its
// meta description, og:description, or first paragraph, in that order of
// preference. Returns an empty string when none is present.
func (s *Service) FetchDescription(ctx context.Context, websiteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build website request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("website returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse website: %w", err)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		return truncate(strings.TrimSpace(desc)), nil
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		return truncate(strings.TrimSpace(desc)), nil
	}

	paragraph := strings.TrimSpace(doc.Find("p").First().Text())
	if paragraph != "" {
		return truncate(paragraph), nil
	}

	return "", nil
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxDescriptionLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxDescriptionLength]))
}
