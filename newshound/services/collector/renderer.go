// newshound/services/collector/renderer.go
package collector

import (
	"context"
	"errors"
	"time"

	"newshound/newshound/utils/types"
)

// Node is an opaque handle to a rendered element. Handles are only
// valid until the underlying document mutates; callers re-acquire by
// selector instead of caching them across actions.
type Node any

var (
	// ErrNotFound: the element structurally does not exist. Permanent,
	// never retried.
	ErrNotFound = errors.New("renderer: element not found")
	// ErrStale: the handle was valid at lookup time but the document
	// changed underneath it. Transient, retried a bounded number of times.
	ErrStale = errors.New("renderer: element reference is stale")
)

// Renderer is the capability surface the crawl consumes from a
// rendering engine. A nil scope means the whole document.
type Renderer interface {
	LoadPage(url string) error
	WaitVisible(selector string, timeout time.Duration) error
	FindOne(scope Node, selector string) (Node, error)
	FindAll(scope Node, selector string) ([]Node, error)
	Click(node Node) error
	ClickSelector(selector string) error
	TypeText(selector, text string) error
	SelectOption(selector, label string) error
	ReadAttribute(node Node, name string) (string, error)
	ReadText(node Node) (string, error)
	CaptureImageBytes(node Node) ([]byte, error)
	CaptureScreenshot(path string) error
}

// Sink receives accepted records in acceptance order.
type Sink interface {
	AppendRecord(ctx context.Context, rec types.Record) error
	Flush() error
}

// BlobStore writes photo bytes under a content-address name. Writing
// the same content twice is a no-op, so the put is idempotent.
type BlobStore interface {
	PutBlobIfAbsent(ctx context.Context, name string, data []byte) (bool, error)
}
