package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

type fakePlaces struct {
	details      map[string]*models.VenueDetail
	detailErrs   map[string]error
	photoData    map[string][]byte
	photoTypes   map[string]string
	photoErrs    map[string]error
	photoFetches []string
}

func (f *fakePlaces) SearchText(ctx context.Context, query string) ([]models.SearchResult, error) {
	return nil, nil
}

func (f *fakePlaces) SearchNearby(ctx context.Context, center interfaces.LatLng, radiusMeters int, pageToken string) (*interfaces.NearbyPage, error) {
	return nil, nil
}

func (f *fakePlaces) SearchNearbyPaged(ctx context.Context, center interfaces.LatLng, radiusMeters, maxPages int) ([]models.SearchResult, error) {
	return nil, nil
}

func (f *fakePlaces) FetchDetails(ctx context.Context, placeID string) (*models.VenueDetail, error) {
	if err, ok := f.detailErrs[placeID]; ok {
		return nil, err
	}
	detail, ok := f.details[placeID]
	if !ok {
		return nil, errors.New("place not found")
	}
	return detail, nil
}

func (f *fakePlaces) FetchPhoto(ctx context.Context, photoReference string) ([]byte, string, error) {
	f.photoFetches = append(f.photoFetches, photoReference)
	if err, ok := f.photoErrs[photoReference]; ok {
		return nil, "", err
	}
	data, ok := f.photoData[photoReference]
	if !ok {
		data = []byte("img:" + photoReference)
	}
	contentType := f.photoTypes[photoReference]
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}

type fakeVenueStorage struct {
	venues    []*models.Venue
	insertErr map[string]error
}

func (f *fakeVenueStorage) Insert(ctx context.Context, venue *models.Venue) error {
	if err, ok := f.insertErr[venue.GooglePlaceID]; ok {
		return err
	}
	for _, existing := range f.venues {
		if existing.GooglePlaceID == venue.GooglePlaceID || existing.SlugPath() == venue.SlugPath() {
			return interfaces.ErrDuplicateVenue
		}
	}
	f.venues = append(f.venues, venue)
	return nil
}

func (f *fakeVenueStorage) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	return nil, interfaces.ErrVenueNotFound
}

func (f *fakeVenueStorage) GetBySlugPath(ctx context.Context, provinceSlug, citySlug, slug string) (*models.Venue, error) {
	return nil, interfaces.ErrVenueNotFound
}

func (f *fakeVenueStorage) List(ctx context.Context, filter interfaces.VenueFilter) ([]*models.Venue, error) {
	return f.venues, nil
}

func (f *fakeVenueStorage) ListTop10(ctx context.Context) ([]*models.Venue, error) {
	return nil, nil
}

func (f *fakeVenueStorage) Update(ctx context.Context, venue *models.Venue) error { return nil }
func (f *fakeVenueStorage) Delete(ctx context.Context, id string) error           { return nil }
func (f *fakeVenueStorage) Count(ctx context.Context) (int, error)                { return len(f.venues), nil }

type fakePhotoStore struct {
	saved    map[string][]byte
	saveErrs map[string]error
	order    []string
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{saved: make(map[string][]byte)}
}

func (f *fakePhotoStore) Save(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err, ok := f.saveErrs[path]; ok {
		return "", err
	}
	f.saved[path] = data
	f.order = append(f.order, path)
	return "https://cdn.example.com/" + path, nil
}

func (f *fakePhotoStore) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

type fakeEvents struct {
	events []interfaces.Event
}

func (f *fakeEvents) Subscribe(eventType interfaces.EventType, handler interfaces.EventHandler) error {
	return nil
}

func (f *fakeEvents) Publish(ctx context.Context, event interfaces.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) PublishSync(ctx context.Context, event interfaces.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeEnricher struct {
	description string
	err         error
	calls       int
}

func (f *fakeEnricher) FetchDescription(ctx context.Context, websiteURL string) (string, error) {
	f.calls++
	return f.description, f.err
}

func testImportConfig() *common.ImportConfig {
	return &common.ImportConfig{
		MaxPhotos: 10,
	}
}

func photoRefs(n int) []string {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = fmt.Sprintf("ref-%d", i+1)
	}
	return refs
}

func detailFor(placeID string) *models.VenueDetail {
	return &models.VenueDetail{
		PlaceID:  placeID,
		Name:     "Sauna De Bron",
		Address:  "Hoofdstraat 1, Amsterdam",
		Phone:    "+31 20 1234567",
		Website:  "https://www.saunadebron.nl",
		Province: "Noord-Holland",
		City:     "Amsterdam",
		Lat:      52.37,
		Lng:      4.89,
		Rating:   4.6,
	}
}

func newTestService(places *fakePlaces, storage *fakeVenueStorage, photos *fakePhotoStore, events *fakeEvents, enricher Enricher, config *common.ImportConfig) interfaces.ImportService {
	if config == nil {
		config = testImportConfig()
	}
	return NewService(places, storage, photos, events, enricher, config, arbor.NewLogger())
}

func TestImportPlaceSuccessWithOrderedPhotos(t *testing.T) {
	detail := detailFor("place-1")
	detail.PhotoReferences = photoRefs(3)

	places := &fakePlaces{
		details:    map[string]*models.VenueDetail{"place-1": detail},
		photoTypes: map[string]string{"ref-2": "image/png"},
	}
	storage := &fakeVenueStorage{}
	photos := newFakePhotoStore()

	svc := newTestService(places, storage, photos, &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	require.NotNil(t, outcome.Venue)
	assert.Equal(t, "sauna-de-bron", outcome.Venue.Slug)
	assert.Equal(t, "noord-holland", outcome.Venue.ProvinceSlug)
	assert.Equal(t, "amsterdam", outcome.Venue.CitySlug)
	assert.Equal(t, "place-1", outcome.Venue.GooglePlaceID)
	assert.NotEmpty(t, outcome.Venue.ID)

	require.Len(t, outcome.Venue.PhotoURLs, 3)
	assert.Equal(t, "https://cdn.example.com/sauna-de-bron-amsterdam/sauna-de-bron-amsterdam-1.jpg", outcome.Venue.PhotoURLs[0])
	assert.Equal(t, "https://cdn.example.com/sauna-de-bron-amsterdam/sauna-de-bron-amsterdam-2.png", outcome.Venue.PhotoURLs[1])
	assert.Equal(t, "https://cdn.example.com/sauna-de-bron-amsterdam/sauna-de-bron-amsterdam-3.jpg", outcome.Venue.PhotoURLs[2])

	require.Len(t, storage.venues, 1)
}

func TestImportPlacePhotoFailuresAreSkipped(t *testing.T) {
	detail := detailFor("place-1")
	detail.PhotoReferences = photoRefs(10)

	places := &fakePlaces{
		details: map[string]*models.VenueDetail{"place-1": detail},
		photoErrs: map[string]error{
			"ref-2": errors.New("timeout"),
			"ref-5": errors.New("timeout"),
			"ref-9": errors.New("timeout"),
		},
	}
	storage := &fakeVenueStorage{}

	svc := newTestService(places, storage, newFakePhotoStore(), &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	assert.Len(t, outcome.Venue.PhotoURLs, 7)
}

func TestImportPlaceStoreFailureIsSkipped(t *testing.T) {
	detail := detailFor("place-1")
	detail.PhotoReferences = photoRefs(2)

	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detail}}
	photos := newFakePhotoStore()
	photos.saveErrs = map[string]error{
		"sauna-de-bron-amsterdam/sauna-de-bron-amsterdam-1.jpg": errors.New("disk full"),
	}

	svc := newTestService(places, &fakeVenueStorage{}, photos, &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	require.Len(t, outcome.Venue.PhotoURLs, 1)
	assert.Contains(t, outcome.Venue.PhotoURLs[0], "-2.jpg")
}

func TestImportPlaceCapsPhotoCount(t *testing.T) {
	detail := detailFor("place-1")
	detail.PhotoReferences = photoRefs(15)

	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detail}}
	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	assert.Len(t, outcome.Venue.PhotoURLs, 10)
	assert.Len(t, places.photoFetches, 10)
}

func TestImportPlaceDuplicate(t *testing.T) {
	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detailFor("place-1")}}
	storage := &fakeVenueStorage{}

	svc := newTestService(places, storage, newFakePhotoStore(), &fakeEvents{}, nil, nil)

	first := svc.ImportPlace(context.Background(), "place-1")
	require.Equal(t, models.ImportStatusImported, first.Status)

	second := svc.ImportPlace(context.Background(), "place-1")
	assert.Equal(t, models.ImportStatusDuplicate, second.Status)
	assert.Nil(t, second.Venue)
	assert.Len(t, storage.venues, 1)
}

func TestImportPlaceDetailFailure(t *testing.T) {
	places := &fakePlaces{
		detailErrs: map[string]error{"place-1": errors.New("provider request failed")},
	}

	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	assert.Equal(t, models.ImportStatusFailed, outcome.Status)
	assert.Contains(t, outcome.Message, "provider request failed")
	assert.Nil(t, outcome.Venue)
}

func TestImportPlaceUnknownRegionFallsBack(t *testing.T) {
	detail := detailFor("place-1")
	detail.Province = ""
	detail.City = ""

	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detail}}
	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), &fakeEvents{}, nil, nil)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	assert.Equal(t, "onbekend", outcome.Venue.ProvinceSlug)
	assert.Equal(t, "onbekend", outcome.Venue.CitySlug)
	assert.Equal(t, "Onbekend", outcome.Venue.Province)
	assert.Equal(t, "Onbekend", outcome.Venue.City)
}

func TestImportPlaceEnrichment(t *testing.T) {
	config := testImportConfig()
	config.EnrichFromWebsite = true
	enricher := &fakeEnricher{description: "Wellness resort in het centrum."}

	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detailFor("place-1")}}
	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), &fakeEvents{}, enricher, config)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	assert.Equal(t, "Wellness resort in het centrum.", outcome.Venue.Description)
	assert.Equal(t, 1, enricher.calls)
}

func TestImportPlaceEnrichmentFailureIsNotFatal(t *testing.T) {
	config := testImportConfig()
	config.EnrichFromWebsite = true
	enricher := &fakeEnricher{err: errors.New("website unreachable")}

	places := &fakePlaces{details: map[string]*models.VenueDetail{"place-1": detailFor("place-1")}}
	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), &fakeEvents{}, enricher, config)
	outcome := svc.ImportPlace(context.Background(), "place-1")

	require.Equal(t, models.ImportStatusImported, outcome.Status)
	assert.Empty(t, outcome.Venue.Description)
}

func TestImportAllContinuesAfterFailure(t *testing.T) {
	detailA := detailFor("place-a")
	detailC := detailFor("place-c")
	detailC.Name = "Thermen Zuid"
	detailC.City = "Rotterdam"
	detailC.Province = "Zuid-Holland"

	places := &fakePlaces{
		details: map[string]*models.VenueDetail{
			"place-a": detailA,
			"place-c": detailC,
		},
		detailErrs: map[string]error{"place-b": errors.New("provider request failed")},
	}
	storage := &fakeVenueStorage{}

	svc := newTestService(places, storage, newFakePhotoStore(), &fakeEvents{}, nil, nil)
	result := svc.ImportAll(context.Background(), []string{"place-a", "place-b", "place-c"})

	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"place-b"}, result.SkippedIDs)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, models.ImportStatusImported, result.Outcomes[0].Status)
	assert.Equal(t, models.ImportStatusFailed, result.Outcomes[1].Status)
	assert.Equal(t, models.ImportStatusImported, result.Outcomes[2].Status)
	assert.Len(t, storage.venues, 2)
}

func TestImportAllPublishesProgressEvents(t *testing.T) {
	places := &fakePlaces{
		details: map[string]*models.VenueDetail{
			"place-a": detailFor("place-a"),
		},
		detailErrs: map[string]error{"place-b": errors.New("boom")},
	}
	events := &fakeEvents{}

	svc := newTestService(places, &fakeVenueStorage{}, newFakePhotoStore(), events, nil, nil)
	svc.ImportAll(context.Background(), []string{"place-a", "place-b"})

	require.Len(t, events.events, 4)
	assert.Equal(t, interfaces.EventImportStarted, events.events[0].Type)
	assert.Equal(t, interfaces.EventImportProgress, events.events[1].Type)
	assert.Equal(t, interfaces.EventImportProgress, events.events[2].Type)
	assert.Equal(t, interfaces.EventImportCompleted, events.events[3].Type)

	first := events.events[1].Payload.(models.ImportProgress)
	assert.Equal(t, 1, first.Current)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, "place-a", first.PlaceID)
	assert.Equal(t, models.ImportStatusImported, first.Status)
	assert.Equal(t, "Sauna De Bron", first.Name)

	second := events.events[2].Payload.(models.ImportProgress)
	assert.Equal(t, 2, second.Current)
	assert.Equal(t, models.ImportStatusFailed, second.Status)
}

func TestImportAllEmptyList(t *testing.T) {
	events := &fakeEvents{}
	svc := newTestService(&fakePlaces{}, &fakeVenueStorage{}, newFakePhotoStore(), events, nil, nil)

	result := svc.ImportAll(context.Background(), nil)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.ImportedCount)
	assert.Empty(t, result.Outcomes)
	require.Len(t, events.events, 2)
	assert.Equal(t, interfaces.EventImportStarted, events.events[0].Type)
	assert.Equal(t, interfaces.EventImportCompleted, events.events[1].Type)
}
