package clips

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fact-shorts-pipeline/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Clips: config.ClipsConfig{PerPage: 1, MaxClipSec: 5},
		Paths: config.PathsConfig{
			Clips:      t.TempDir(),
			SampleClip: "static/sample.mp4",
		},
		Keys: config.Keys{Pexels: "test-key"},
	}
}

func TestKeywordUsesSecondToken(t *testing.T) {
	assert.Equal(t, "volcanoes", Keyword("1. Volcanoes erupt suddenly.", "Nature"))
}

func TestKeywordStripsTrailingPeriods(t *testing.T) {
	assert.Equal(t, "ice", Keyword("2. Ice.", "Nature"))
}

func TestKeywordFallsBackToTopicFirstWord(t *testing.T) {
	assert.Equal(t, "nature", Keyword("1.", "Nature"))
	assert.Equal(t, "deep", Keyword("3.", "Deep Oceans"))
}

func TestSourceClipDownloadsFirstVariant(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/videos/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "volcanoes", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		fmt.Fprintf(w, `{"videos":[{"video_files":[{"link":"%s/clip.mp4"},{"link":"%s/other.mp4"}]}]}`,
			server.URL, server.URL)
	})
	mux.HandleFunc("/clip.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake video bytes"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(t)
	sourcer := NewSourcer(cfg)
	sourcer.baseURL = server.URL

	path, err := sourcer.SourceClip(context.Background(), "1. Volcanoes erupt suddenly.", "Nature")
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths.Clips, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake video bytes", string(data))
}

func TestSourceClipEmptyResultSetUsesSample(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videos":[]}`))
	}))
	defer server.Close()

	cfg := testConfig(t)
	sourcer := NewSourcer(cfg)
	sourcer.baseURL = server.URL

	path, err := sourcer.SourceClip(context.Background(), "1. Unfindable things.", "Mysteries")
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths.SampleClip, path)
}

func TestSourceClipSearchFailureIsHardError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sourcer := NewSourcer(testConfig(t))
	sourcer.baseURL = server.URL

	_, err := sourcer.SourceClip(context.Background(), "1. Broken backends.", "Tech")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSourceClipDownloadFailureIsHardError(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/videos/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"videos":[{"video_files":[{"link":"%s/gone.mp4"}]}]}`, server.URL)
	})
	mux.HandleFunc("/gone.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	sourcer := NewSourcer(testConfig(t))
	sourcer.baseURL = server.URL

	_, err := sourcer.SourceClip(context.Background(), "1. Vanishing clips.", "Tech")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
