package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
)

var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func required(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return validationError("%s is required", field)
	}
	return nil
}

// catalogNotifier fans a catalog mutation out to the cache and the event stream.
// Both are best effort; the mutation has already been committed.
type catalogNotifier struct {
	cache     caching.CacheService
	publisher events.Publisher
}

func (n *catalogNotifier) changed(ctx context.Context, eventType events.Type, entity string, id int64, urls ...string) {
	if n.cache != nil {
		if err := n.cache.InvalidateCatalog(ctx); err != nil {
			log.Printf("WARN: Failed to invalidate catalog cache after %s %s %d: %v", eventType, entity, id, err)
		}
	}
	if n.publisher != nil {
		var refs []string
		for _, u := range urls {
			if u != "" {
				refs = append(refs, u)
			}
		}
		event := events.Event{Type: eventType, Entity: entity, ID: id, URLs: refs}
		if err := n.publisher.Publish(ctx, event); err != nil {
			log.Printf("WARN: Failed to publish %s for %s %d: %v", eventType, entity, id, err)
		}
	}
}

// replaceAsset drives the AssetField of key through an upload. load reads the
// url stored on the record once key is reserved. persist is called only after
// the new image is stored; if it fails the new image is deleted again.
func replaceAsset(ctx context.Context, fields *assetFields, key string, images ImageService, file *UploadFile, category models.AssetCategory, load func() (string, error), persist func(url string) error) (string, error) {
	field, previous, err := fields.begin(key, load)
	if err != nil {
		return "", err
	}
	defer fields.release(key)

	url, err := images.Upload(ctx, file, category, previous)
	if err != nil {
		_ = fields.settle(field, (*AssetField).Fail)
		return "", err
	}
	if err := fields.settle(field, func(f *AssetField) error { return f.Succeed(url) }); err != nil {
		return "", err
	}

	if err := persist(url); err != nil {
		images.Retire(ctx, category, url)
		return "", err
	}
	return url, nil
}
