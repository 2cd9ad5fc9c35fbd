// YouTube Music [SubscriptionService] implementation
//
// Communicates with a ytmusicapi proxy server. The proxy wraps the
// ytmusicapi Python library and authenticates with browser headers
// captured during setup.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"ytsm/internal/models"
	"ytsm/internal/shared"
)

const (
	defaultYTBaseURL  = "http://localhost:8080"
	defaultYTRate     = 4.0
	ytMusicChannelURL = "https://music.youtube.com/channel/%s"
)

// ytArtist represents an artist entry in proxy responses.
type ytArtist struct {
	Artist      string `json:"artist"`
	BrowseID    string `json:"browseId"`
	Subscribers string `json:"subscribers,omitempty"`
}

// YTMusicService implements SubscriptionService against the proxy.
//
// Requests are rate limited client-side; landing a burst of subscribe
// calls on the proxy gets the session flagged.
type YTMusicService struct {
	baseURL     string
	headersPath string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewYTMusicService creates a new YouTube Music service instance.
//
// headersPath points at the browser headers file the proxy consumes;
// requestsPerSecond caps outgoing proxy calls (defaults to 4).
func NewYTMusicService(baseURL, headersPath string, requestsPerSecond float64) *YTMusicService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultYTRate
	}

	return &YTMusicService{
		baseURL:     baseURL,
		headersPath: headersPath,
		httpClient:  http.DefaultClient,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Name returns the service name.
func (y *YTMusicService) Name() string {
	return "YouTube Music"
}

func (y *YTMusicService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, y.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.headersPath != "" {
		req.Header.Set("X-Auth-File", y.headersPath)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListSubscriptions retrieves the subscribed artists of the account.
//
// Calls GET /api/library/artists on the proxy.
func (y *YTMusicService) ListSubscriptions(ctx context.Context) ([]models.Artist, error) {
	var entries []ytArtist
	if err := y.doRequest(ctx, http.MethodGet, "/api/library/artists", nil, &entries); err != nil {
		return nil, err
	}

	artists := make([]models.Artist, len(entries))
	for i, entry := range entries {
		artists[i] = models.Artist{
			Name:        entry.Artist,
			ID:          entry.BrowseID,
			URL:         channelURL(entry.BrowseID),
			Subscribers: parseSubscribers(entry.Subscribers),
			Status:      models.StatusSubscribed,
		}
	}

	return artists, nil
}

// SearchArtist searches for an artist by name, returning the best match.
//
// Calls GET /api/search?q={name}&filter=artists on the proxy. An empty
// result set yields [shared.ErrArtistNotFound].
func (y *YTMusicService) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	endpoint := fmt.Sprintf("/api/search?q=%s&filter=artists", url.QueryEscape(name))

	var results []ytArtist
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, name)
	}

	best := results[0]
	return &models.Artist{
		Name:        best.Artist,
		ID:          best.BrowseID,
		URL:         channelURL(best.BrowseID),
		Subscribers: parseSubscribers(best.Subscribers),
		Status:      models.StatusUnknown,
	}, nil
}

// SubscribeArtist subscribes the account to an artist channel.
//
// Calls POST /api/subscriptions with the artist's channel ID. Returns
// false when the proxy reports the subscribe was not applied.
func (y *YTMusicService) SubscribeArtist(ctx context.Context, artist *models.Artist) (bool, error) {
	if artist.ID == "" {
		return false, fmt.Errorf("%w: no channel ID for %s", shared.ErrInvalidInput, artist.Name)
	}

	body := struct {
		ChannelIDs []string `json:"channel_ids"`
	}{ChannelIDs: []string{artist.ID}}

	var result struct {
		Success bool `json:"success"`
	}
	if err := y.doRequest(ctx, http.MethodPost, "/api/subscriptions", body, &result); err != nil {
		return false, err
	}

	if result.Success {
		artist.Status = models.StatusSubscribed
	}
	return result.Success, nil
}

// Health checks proxy availability via GET /health.
func (y *YTMusicService) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := y.doRequest(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return nil
}

func channelURL(browseID string) string {
	if browseID == "" {
		return ""
	}
	return fmt.Sprintf(ytMusicChannelURL, browseID)
}

// parseSubscribers converts the proxy's display string ("1.02M subscribers",
// "897K", "12,345") to a count. Unparseable input yields 0; the count is
// informational only.
func parseSubscribers(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := float64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		multiplier = 1_000_000_000
		s = strings.TrimSuffix(s, "B")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(value * multiplier)
}
