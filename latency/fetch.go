package latency

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/exascience/parpatterns/internal/report"
)

// FetchTitle requests url and returns the contents of the <title> element
// of the HTML page it is served, after following redirects.
func FetchTitle(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	title, ok := findTitle(doc)
	if !ok {
		return "", fmt.Errorf("GET %s: page has no title", url)
	}
	return title, nil
}

func findTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return strings.TrimSpace(b.String()), true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title, ok := findTitle(c); ok {
			return title, true
		}
	}
	return "", false
}

// Fetcher returns a task that fetches a page from url, which is expected
// to serve a different random page on every request, and reports its title.
func Fetcher(ctx context.Context, client *http.Client, url string, r *report.Reporter) Task {
	return func(taskNumber int) error {
		title, err := FetchTitle(ctx, client, url)
		if err != nil {
			return fmt.Errorf("task %d: %w", taskNumber, err)
		}
		r.Line("Task %d fetched %q.", taskNumber, title)
		return nil
	}
}
