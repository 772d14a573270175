// newshound/services/renderer/playwright.go
package renderer

import (
	"fmt"
	"strings"
	"time"

	"newshound/newshound/services/collector"

	"github.com/playwright-community/playwright-go"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Playwright drives a headless Chromium page and exposes it through
// the collector.Renderer surface. One Playwright instance means one
// page: the crawl is a single serialized DOM session.
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
}

func NewPlaywright(headless bool, timeout time.Duration) (*Playwright, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, err
	}
	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, err
	}
	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		browser.Close()
		pw.Stop()
		return nil, err
	}
	page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64((timeout * 3).Milliseconds()))

	return &Playwright{pw: pw, browser: browser, ctx: ctx, page: page, timeout: timeout}, nil
}

func (r *Playwright) Close() {
	if r.ctx != nil {
		r.ctx.Close()
	}
	if r.browser != nil {
		r.browser.Close()
	}
	if r.pw != nil {
		r.pw.Stop()
	}
}

func (r *Playwright) LoadPage(url string) error {
	_, err := r.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return classify(err)
}

func (r *Playwright) WaitVisible(selector string, timeout time.Duration) error {
	_, err := r.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return classify(err)
}

func (r *Playwright) FindOne(scope collector.Node, selector string) (collector.Node, error) {
	var (
		handle playwright.ElementHandle
		err    error
	)
	if scope == nil {
		handle, err = r.page.QuerySelector(selector)
	} else {
		parent, ok := scope.(playwright.ElementHandle)
		if !ok {
			return nil, fmt.Errorf("%w: foreign node handle", collector.ErrStale)
		}
		handle, err = parent.QuerySelector(selector)
	}
	if err != nil {
		return nil, classify(err)
	}
	if handle == nil {
		return nil, collector.ErrNotFound
	}
	return handle, nil
}

func (r *Playwright) FindAll(scope collector.Node, selector string) ([]collector.Node, error) {
	var (
		handles []playwright.ElementHandle
		err     error
	)
	if scope == nil {
		handles, err = r.page.QuerySelectorAll(selector)
	} else {
		parent, ok := scope.(playwright.ElementHandle)
		if !ok {
			return nil, fmt.Errorf("%w: foreign node handle", collector.ErrStale)
		}
		handles, err = parent.QuerySelectorAll(selector)
	}
	if err != nil {
		return nil, classify(err)
	}
	nodes := make([]collector.Node, 0, len(handles))
	for _, h := range handles {
		nodes = append(nodes, h)
	}
	return nodes, nil
}

func (r *Playwright) Click(node collector.Node) error {
	handle, ok := node.(playwright.ElementHandle)
	if !ok {
		return fmt.Errorf("%w: foreign node handle", collector.ErrStale)
	}
	return classify(handle.Click())
}

func (r *Playwright) ClickSelector(selector string) error {
	return classify(r.page.Click(selector))
}

func (r *Playwright) TypeText(selector, text string) error {
	return classify(r.page.Fill(selector, text))
}

func (r *Playwright) SelectOption(selector, label string) error {
	picked, err := r.page.SelectOption(selector, playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	if err != nil {
		return classify(err)
	}
	if len(picked) == 0 {
		return fmt.Errorf("%w: option %q", collector.ErrNotFound, label)
	}
	return nil
}

func (r *Playwright) ReadAttribute(node collector.Node, name string) (string, error) {
	handle, ok := node.(playwright.ElementHandle)
	if !ok {
		return "", fmt.Errorf("%w: foreign node handle", collector.ErrStale)
	}
	value, err := handle.GetAttribute(name)
	if err != nil {
		return "", classify(err)
	}
	return value, nil
}

func (r *Playwright) ReadText(node collector.Node) (string, error) {
	handle, ok := node.(playwright.ElementHandle)
	if !ok {
		return "", fmt.Errorf("%w: foreign node handle", collector.ErrStale)
	}
	text, err := handle.TextContent()
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(text), nil
}

// CaptureImageBytes renders the node itself, which works for any <img>
// regardless of lazy-loading or srcset indirection.
func (r *Playwright) CaptureImageBytes(node collector.Node) ([]byte, error) {
	handle, ok := node.(playwright.ElementHandle)
	if !ok {
		return nil, fmt.Errorf("%w: foreign node handle", collector.ErrStale)
	}
	data, err := handle.Screenshot()
	if err != nil {
		return nil, classify(err)
	}
	return data, nil
}

func (r *Playwright) CaptureScreenshot(path string) error {
	_, err := r.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return classify(err)
}

// classify maps playwright failures onto the collector's two failure
// classes: detached-handle conditions are stale (retryable), timeouts
// waiting for an element are not-found (permanent for that field).
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not attached"),
		strings.Contains(msg, "detached"),
		strings.Contains(msg, "Execution context was destroyed"),
		strings.Contains(msg, "Target closed"):
		return fmt.Errorf("%w: %v", collector.ErrStale, err)
	case strings.Contains(msg, "Timeout"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "no node found"):
		return fmt.Errorf("%w: %v", collector.ErrNotFound, err)
	}
	return err
}
