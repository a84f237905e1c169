package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestFetchDescriptionMetaTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta name="description" content="Wellness resort met binnen- en buitenbaden.">
		</head><body><p>Welkom</p></body></html>`)
	}))
	defer server.Close()

	svc := NewService(arbor.NewLogger())
	desc, err := svc.FetchDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Wellness resort met binnen- en buitenbaden.", desc)
}

func TestFetchDescriptionOGFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:description" content="Sauna in het bos.">
		</head><body></body></html>`)
	}))
	defer server.Close()

	svc := NewService(arbor.NewLogger())
	desc, err := svc.FetchDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Sauna in het bos.", desc)
}

func TestFetchDescriptionParagraphFallbackTruncated(t *testing.T) {
	long := strings.Repeat("sauna ", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><p>%s</p></body></html>`, long)
	}))
	defer server.Close()

	svc := NewService(arbor.NewLogger())
	desc, err := svc.FetchDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, desc)
	assert.LessOrEqual(t, len([]rune(desc)), maxDescriptionLength)
}

func TestFetchDescriptionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewService(arbor.NewLogger())
	_, err := svc.FetchDescription(context.Background(), server.URL)
	require.Error(t, err)
}
