package clips

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fact-shorts-pipeline/config"
)

const defaultBaseURL = "https://api.pexels.com"

// Sourcer finds and downloads one stock video clip per fact line from the
// Pexels video search API.
type Sourcer struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
}

// NewSourcer creates a Sourcer.
func NewSourcer(cfg *config.Config) *Sourcer {
	return &Sourcer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type searchResponse struct {
	Videos []struct {
		VideoFiles []struct {
			Link string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Keyword derives the search keyword for a fact line: the second whitespace
// token with trailing periods stripped, lowercased (the first token is the
// numeric marker). A fact line without a second token falls back to the
// first word of the topic.
func Keyword(factLine, topic string) string {
	parts := strings.Fields(factLine)
	if len(parts) > 1 {
		return strings.ToLower(strings.TrimRight(parts[1], "."))
	}
	topicParts := strings.Fields(topic)
	if len(topicParts) == 0 {
		return strings.ToLower(topic)
	}
	return strings.ToLower(topicParts[0])
}

// SourceClip searches stock footage for the fact's keyword and downloads the
// first file variant of the best result as a uniquely named asset. An empty
// result set yields the bundled sample clip — a policy decision, not an
// error. Transport failures during search or download are hard errors.
func (s *Sourcer) SourceClip(ctx context.Context, factLine, topic string) (string, error) {
	keyword := Keyword(factLine, topic)
	log.Printf("[clips] Searching footage for keyword %q...", keyword)

	searchURL := fmt.Sprintf("%s/videos/search?query=%s&per_page=%d",
		s.baseURL, url.QueryEscape(keyword), s.cfg.Clips.PerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", s.cfg.Keys.Pexels)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("footage search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("footage search returned HTTP %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parse footage search response: %w", err)
	}

	if len(result.Videos) == 0 || len(result.Videos[0].VideoFiles) == 0 {
		log.Printf("[clips] No footage for %q — using bundled sample", keyword)
		return s.cfg.Paths.SampleClip, nil
	}

	return s.download(ctx, result.Videos[0].VideoFiles[0].Link)
}

func (s *Sourcer) download(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("clip download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("clip download returned HTTP %d", resp.StatusCode)
	}

	outFile := filepath.Join(s.cfg.Paths.Clips, uuid.NewString()+".mp4")
	out, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("create clip asset: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("save clip asset: %w", err)
	}

	log.Printf("[clips] ✅ Clip saved: %s", outFile)
	return outFile, nil
}
