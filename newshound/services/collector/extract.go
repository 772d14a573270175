// newshound/services/collector/extract.go
package collector

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"newshound/newshound/utils/types"

	"go.uber.org/zap"
)

// staleAttempts bounds how often a single field is re-acquired after a
// stale-reference failure before it degrades to an absent value.
const staleAttempts = 2

// retryOnStale runs fn until it succeeds, fails permanently, or the
// stale-retry budget runs out. fn must locate AND read in the same call
// so every attempt works on a fresh handle.
func retryOnStale(fn func() (string, error)) (string, error) {
	var err error
	for attempt := 0; attempt < staleAttempts; attempt++ {
		var v string
		v, err = fn()
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrStale) {
			return "", err
		}
	}
	return "", err
}

// extractRecord builds a Record from one result node. Every field is
// extracted independently: a missing or unreadable sub-element empties
// that field only and never aborts the rest of the record.
func (c *Collector) extractRecord(ctx context.Context, node Node, phrase string) types.Record {
	title, _ := c.nodeText(node, c.sel.ResultTitle)
	summary, _ := c.nodeText(node, c.sel.ResultSummary)

	var publishedAt *time.Time
	if stamp, err := c.nodeAttr(node, c.sel.ResultStamp, c.sel.StampAttr); err == nil {
		if millis, err := strconv.ParseInt(stamp, 10, 64); err == nil {
			t := time.UnixMilli(millis)
			publishedAt = &t
		}
	}

	return types.Record{
		Title:       title,
		PublishedAt: publishedAt,
		Description: summary,
		Picture:     c.savePhoto(ctx, node),
		PhraseCount: CountPhrase(phrase, title, summary),
		HasMoney:    MatchesMoney(title) || MatchesMoney(summary),
	}
}

func (c *Collector) nodeText(scope Node, selector string) (string, error) {
	return retryOnStale(func() (string, error) {
		sub, err := c.renderer.FindOne(scope, selector)
		if err != nil {
			return "", err
		}
		return c.renderer.ReadText(sub)
	})
}

func (c *Collector) nodeAttr(scope Node, selector, attr string) (string, error) {
	return retryOnStale(func() (string, error) {
		sub, err := c.renderer.FindOne(scope, selector)
		if err != nil {
			return "", err
		}
		return c.renderer.ReadAttribute(sub, attr)
	})
}

// savePhoto captures the node's photo, names it by the sha256 of its
// bytes, and stores it at most once per unique content. Returns the
// content-address filename, or "" when the node has no usable image.
func (c *Collector) savePhoto(ctx context.Context, node Node) string {
	if c.blobs == nil {
		return ""
	}
	var data []byte
	_, err := retryOnStale(func() (string, error) {
		img, err := c.renderer.FindOne(node, c.sel.ResultImage)
		if err != nil {
			return "", err
		}
		data, err = c.renderer.CaptureImageBytes(img)
		return "", err
	})
	if err != nil || len(data) == 0 {
		return ""
	}

	name := photoName(data)
	if _, err := c.blobs.PutBlobIfAbsent(ctx, name, data); err != nil {
		c.log.Error("photo store failed", zap.String("name", name), zap.Error(err))
		return ""
	}
	return name
}

// photoName derives the content-address filename for image bytes.
func photoName(data []byte) string {
	ext := ".img"
	switch http.DetectContentType(data) {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}
	return fmt.Sprintf("%x%s", sha256.Sum256(data), ext)
}
