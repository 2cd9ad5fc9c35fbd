package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("headers and cookie flag", func(t *testing.T) {
		cmd := `curl 'https://music.youtube.com/youtubei/v1/browse' \
  -H 'authorization: SAPISIDHASH abc123' \
  -H 'x-goog-authuser: 0' \
  -b 'VISITOR_INFO1_LIVE=xyz; SID=token'`

		parsed, err := ParseCurlCommand(cmd)
		if err != nil {
			t.Fatalf("ParseCurlCommand() error = %v", err)
		}

		if parsed.Headers["authorization"] != "SAPISIDHASH abc123" {
			t.Errorf("unexpected authorization header: %q", parsed.Headers["authorization"])
		}
		if parsed.Headers["x-goog-authuser"] != "0" {
			t.Errorf("unexpected x-goog-authuser header: %q", parsed.Headers["x-goog-authuser"])
		}
		if parsed.Cookie != "VISITOR_INFO1_LIVE=xyz; SID=token" {
			t.Errorf("unexpected cookie: %q", parsed.Cookie)
		}
	})

	t.Run("cookie as header", func(t *testing.T) {
		cmd := `curl 'https://music.youtube.com' -H 'Cookie: SID=token' -H 'accept: */*'`

		parsed, err := ParseCurlCommand(cmd)
		if err != nil {
			t.Fatalf("ParseCurlCommand() error = %v", err)
		}

		if parsed.Cookie != "SID=token" {
			t.Errorf("expected cookie from header, got %q", parsed.Cookie)
		}
		if _, ok := parsed.Headers["Cookie"]; ok {
			t.Error("cookie should not appear in the headers map")
		}
	})

	t.Run("double quoted headers", func(t *testing.T) {
		cmd := `curl "https://music.youtube.com" -H "accept: */*"`

		parsed, err := ParseCurlCommand(cmd)
		if err != nil {
			t.Fatalf("ParseCurlCommand() error = %v", err)
		}
		if parsed.Headers["accept"] != "*/*" {
			t.Errorf("unexpected accept header: %q", parsed.Headers["accept"])
		}
	})

	t.Run("no headers", func(t *testing.T) {
		_, err := ParseCurlCommand("curl 'https://music.youtube.com'")
		if !errors.Is(err, ErrMissingHeaders) {
			t.Errorf("expected ErrMissingHeaders, got %v", err)
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.sh")
	content := `curl 'https://music.youtube.com' -H 'authorization: hash'`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write curl file: %v", err)
	}

	parsed, err := ParseCurlFile(path)
	if err != nil {
		t.Fatalf("ParseCurlFile() error = %v", err)
	}
	if parsed.Headers["authorization"] != "hash" {
		t.Errorf("unexpected authorization header: %q", parsed.Headers["authorization"])
	}

	if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCurlHeadersToHeadersRaw(t *testing.T) {
	c := &CurlHeaders{
		Headers: map[string]string{"authorization": "hash"},
		Cookie:  "SID=token",
	}

	raw := c.ToHeadersRaw()

	if !strings.Contains(raw, "authorization: hash") {
		t.Errorf("headers_raw missing authorization line: %q", raw)
	}
	if !strings.HasSuffix(raw, "cookie: SID=token") {
		t.Errorf("cookie should be the last line: %q", raw)
	}
}
