// newshound/services/renderer/static.go
package renderer

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"newshound/newshound/services/collector"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Static is a read-only Renderer over a parsed HTML document. It backs
// extraction tests with real markup fixtures and lets the extraction
// policy run against saved page snapshots; interactions (click, type,
// select) are structurally impossible on a static document and report
// not-found.
type Static struct {
	doc   *goquery.Document
	base  *url.URL
	httpc *http.Client
}

// NewStaticFromHTML parses markup into a Static renderer. baseURL
// resolves relative image sources; it may be empty.
func NewStaticFromHTML(markup, baseURL string) (*Static, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	s := &Static{
		doc:   goquery.NewDocumentFromNode(root),
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
	if baseURL != "" {
		if s.base, err = url.Parse(baseURL); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadPage fetches url and replaces the current document with it.
func (r *Static) LoadPage(pageURL string) error {
	resp, err := r.httpc.Get(pageURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}
	root, err := html.Parse(resp.Body)
	if err != nil {
		return err
	}
	r.doc = goquery.NewDocumentFromNode(root)
	r.base, _ = url.Parse(pageURL)
	return nil
}

func (r *Static) WaitVisible(selector string, _ time.Duration) error {
	if r.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", collector.ErrNotFound, selector)
	}
	return nil
}

func (r *Static) FindOne(scope collector.Node, selector string) (collector.Node, error) {
	root, err := r.root(scope)
	if err != nil {
		return nil, err
	}
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", collector.ErrNotFound, selector)
	}
	return sel, nil
}

func (r *Static) FindAll(scope collector.Node, selector string) ([]collector.Node, error) {
	root, err := r.root(scope)
	if err != nil {
		return nil, err
	}
	found := root.Find(selector)
	nodes := make([]collector.Node, 0, found.Length())
	for i := 0; i < found.Length(); i++ {
		nodes = append(nodes, found.Eq(i))
	}
	return nodes, nil
}

func (r *Static) Click(collector.Node) error {
	return fmt.Errorf("%w: static document cannot be clicked", collector.ErrNotFound)
}

func (r *Static) ClickSelector(string) error {
	return fmt.Errorf("%w: static document cannot be clicked", collector.ErrNotFound)
}

func (r *Static) TypeText(string, string) error {
	return fmt.Errorf("%w: static document cannot receive input", collector.ErrNotFound)
}

func (r *Static) SelectOption(string, string) error {
	return fmt.Errorf("%w: static document has no live selects", collector.ErrNotFound)
}

func (r *Static) ReadAttribute(node collector.Node, name string) (string, error) {
	sel, err := r.selection(node)
	if err != nil {
		return "", err
	}
	value, _ := sel.Attr(name)
	return value, nil
}

func (r *Static) ReadText(node collector.Node) (string, error) {
	sel, err := r.selection(node)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

// CaptureImageBytes downloads the node's src, resolved against the
// document base.
func (r *Static) CaptureImageBytes(node collector.Node) ([]byte, error) {
	sel, err := r.selection(node)
	if err != nil {
		return nil, err
	}
	src, ok := sel.Attr("src")
	if !ok || src == "" {
		return nil, fmt.Errorf("%w: image has no src", collector.ErrNotFound)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: bad image src %q", collector.ErrNotFound, src)
	}
	if r.base != nil {
		ref = r.base.ResolveReference(ref)
	}
	resp, err := r.httpc.Get(ref.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: status %d", ref, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// CaptureScreenshot writes the current markup to path; the textual
// snapshot is the static equivalent of a diagnostic screenshot.
func (r *Static) CaptureScreenshot(path string) error {
	markup, err := r.doc.Html()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(markup), 0o644)
}

func (r *Static) root(scope collector.Node) (*goquery.Selection, error) {
	if scope == nil {
		return r.doc.Selection, nil
	}
	return r.selection(scope)
}

func (r *Static) selection(node collector.Node) (*goquery.Selection, error) {
	sel, ok := node.(*goquery.Selection)
	if !ok {
		return nil, fmt.Errorf("%w: foreign node handle", collector.ErrStale)
	}
	return sel, nil
}
