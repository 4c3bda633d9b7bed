package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LJTian/eztax/internal/news"
	"github.com/mattn/go-runewidth"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const (
	codeWidth  = 12
	dateWidth  = 14
	titleWidth   = 64
	summaryWidth = 80
)

// WriteOutput writes the feed in the specified format
func WriteOutput(w io.Writer, feed news.Feed, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, feed)
	case FormatText:
		return writeText(w, feed)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, feed news.Feed) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(feed)
}

func writeText(w io.Writer, feed news.Feed) error {
	if feed.Unavailable {
		fmt.Fprintf(w, "Could not load news. Check the source directly: %s\n", feed.SourceURL)
		return nil
	}
	if len(feed.Items) == 0 {
		fmt.Fprintf(w, "No announcements found at %s\n", feed.SourceURL)
		return nil
	}

	fmt.Fprintf(w, "%s %s %s\n", cell("CODE", codeWidth), cell("DATE", dateWidth), "TITLE")
	for _, it := range feed.Items {
		fmt.Fprintf(w, "%s %s %s\n",
			cell(deref(it.ReferenceCode), codeWidth),
			cell(deref(it.PublishedDateText), dateWidth),
			runewidth.Truncate(it.Title, titleWidth, "…"),
		)
		indent := runewidth.FillRight("", codeWidth+dateWidth+1)
		fmt.Fprintf(w, "%s %s\n", indent, runewidth.Truncate(it.Summary, summaryWidth, "…"))
		fmt.Fprintf(w, "%s %s\n", indent, it.URL)
	}
	fmt.Fprintf(w, "\nTotal: %d announcements\n", len(feed.Items))
	return nil
}

// cell 按显示宽度截断并右侧补齐
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
