package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LJTian/eztax/internal/news"
	"github.com/LJTian/eztax/internal/processor"
	"github.com/mattn/go-runewidth"
)

const page = `<html><body>
<h3><a href="/newsroom/a">IRS announces 2026 pension plan limitations</a></h3>
<p><strong>IR-2025-111, Nov. 13, 2025</strong> — Limits increase.</p>
</body></html>`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REDIS_ADDR", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCollectText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	out, err := runCmd(t, "--source", srv.URL, "--origin", "https://www.irs.gov")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	for _, want := range []string{"IR-2025-111", "Nov. 13, 2025", "IRS announces 2026 pension plan limitations", "https://www.irs.gov/newsroom/a", "Total: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCollectJSONNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	out, err := runCmd(t, "--source", srv.URL, "--origin", "https://www.irs.gov", "--format", "json", "--no-cache")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	var feed news.Feed
	if err := json.Unmarshal([]byte(out), &feed); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if feed.Unavailable || len(feed.Items) != 1 {
		t.Fatalf("unexpected feed: %+v", feed)
	}
}

func TestCollectUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := runCmd(t, "--source", srv.URL)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if !strings.Contains(out, "Could not load news") {
		t.Fatalf("expected fallback message, got %q", out)
	}
}

func TestCollectInvalidFormat(t *testing.T) {
	if _, err := runCmd(t, "--format", "xml"); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestWriteTextTruncatesLongTitles(t *testing.T) {
	code := "IR-2025-1"
	feed := news.Feed{Items: []processor.Announcement{{
		Title:         strings.Repeat("Very long title ", 10),
		ReferenceCode: &code,
		URL:           "https://www.irs.gov/x",
	}}}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, feed, FormatText); err != nil {
		t.Fatalf("WriteOutput error: %v", err)
	}
	if !strings.Contains(buf.String(), "…") {
		t.Fatalf("long title should be truncated with ellipsis:\n%s", buf.String())
	}
	// 没有日期时用 "-" 占位
	if !strings.Contains(buf.String(), "IR-2025-1    -") {
		t.Fatalf("missing date placeholder:\n%s", buf.String())
	}
}

func TestWriteTextShowsTruncatedSummary(t *testing.T) {
	feed := news.Feed{Items: []processor.Announcement{
		{Title: "Short", Summary: "Brief summary.", URL: "https://www.irs.gov/a"},
		{Title: "Long", Summary: strings.Repeat("税务", 60), URL: "https://www.irs.gov/b"},
	}}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, feed, FormatText); err != nil {
		t.Fatalf("WriteOutput error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Brief summary.") {
		t.Fatalf("summary missing:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "税务") {
			summary := strings.TrimSpace(line)
			if !strings.HasSuffix(summary, "…") {
				t.Fatalf("long summary should end with ellipsis: %q", summary)
			}
			// 按显示宽度截断，宽字符不会撑破列宽
			if w := runewidth.StringWidth(summary); w > summaryWidth {
				t.Fatalf("summary width = %d, want <= %d", w, summaryWidth)
			}
		}
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteOutput(&buf, news.Feed{SourceURL: "https://www.irs.gov/n"}, FormatText)
	if !strings.Contains(buf.String(), "No announcements found") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
