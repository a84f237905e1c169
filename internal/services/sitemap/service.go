package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
)

// staticPaths are the site pages that exist regardless of stored venues
var staticPaths = []string{
	"",
	"/top-10",
	"/over-ons",
	"/contact",
}

type urlEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Service generates the sitemap from stored venues and writes it to disk.
// It can run once on demand or on a cron schedule.
type Service struct {
	venueStorage interfaces.VenueStorage
	eventService interfaces.EventService
	config       *common.SitemapConfig
	cron         *cron.Cron
	logger       arbor.ILogger
	running      bool
}

// NewService creates a new sitemap service
func NewService(venueStorage interfaces.VenueStorage, eventService interfaces.EventService, config *common.SitemapConfig, logger arbor.ILogger) *Service {
	return &Service{
		venueStorage: venueStorage,
		eventService: eventService,
		config:       config,
		cron:         cron.New(),
		logger:       logger,
	}
}

// Generate builds the sitemap XML from the current venue set
func (s *Service) Generate(ctx context.Context) ([]byte, error) {
	venues, err := s.venueStorage.List(ctx, interfaces.VenueFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	now := time.Now().Format("2006-01-02")
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, path := range staticPaths {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        s.config.SiteURL + path,
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	// Province and city index pages, deduplicated across venues
	provinces := make(map[string]bool)
	cities := make(map[string]bool)
	for _, venue := range venues {
		provinces[venue.ProvinceSlug] = true
		cities[venue.ProvinceSlug+"/"+venue.CitySlug] = true
	}

	for _, slug := range sortedKeys(provinces) {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/sauna/%s", s.config.SiteURL, slug),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}
	for _, path := range sortedKeys(cities) {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/sauna/%s", s.config.SiteURL, path),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}

	for _, venue := range venues {
		lastMod := now
		if !venue.UpdatedAt.IsZero() {
			lastMod = venue.UpdatedAt.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/sauna/%s", s.config.SiteURL, venue.SlugPath()),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   0.5,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// WriteFile regenerates the sitemap and writes it to the configured output path
func (s *Service) WriteFile(ctx context.Context) error {
	data, err := s.Generate(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.config.Output), 0755); err != nil {
		return fmt.Errorf("failed to create sitemap directory: %w", err)
	}
	if err := os.WriteFile(s.config.Output, data, 0644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}

	s.logger.Info().
		Str("output", s.config.Output).
		Int("size_bytes", len(data)).
		Msg("Sitemap written")

	if s.eventService != nil {
		if err := s.eventService.Publish(ctx, interfaces.Event{Type: interfaces.EventSitemapUpdated}); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish sitemap event")
		}
	}

	return nil
}

// Start schedules periodic regeneration. No-op when disabled in config.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.logger.Info().Msg("Sitemap scheduler disabled")
		return nil
	}
	if s.running {
		return fmt.Errorf("sitemap scheduler already running")
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.WriteFile(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Scheduled sitemap generation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sitemap generation: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Msg("Sitemap scheduler started")

	return nil
}

// Stop halts scheduled regeneration and waits for a running job to finish
func (s *Service) Stop() {
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info().Msg("Sitemap scheduler stopped")
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
