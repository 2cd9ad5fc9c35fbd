// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"ytsm/internal/models"
	"ytsm/internal/shared"
)

// MockService is a test double for [services.SubscriptionService].
//
// Zero value lists no subscriptions, finds nothing, and accepts every
// subscribe. Populate the fields to steer behavior.
type MockService struct {
	Subscriptions []models.Artist
	SearchResults map[string]*models.Artist
	SubscribeFail bool
	Err           error
}

func (m *MockService) ListSubscriptions(ctx context.Context) ([]models.Artist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Subscriptions, nil
}

func (m *MockService) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if artist, ok := m.SearchResults[shared.NormalizeArtistKey(name)]; ok {
		found := *artist
		return &found, nil
	}
	return nil, shared.ErrArtistNotFound
}

func (m *MockService) SubscribeArtist(ctx context.Context, artist *models.Artist) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return !m.SubscribeFail, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
