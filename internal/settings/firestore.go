package settings

import (
	"context"
	"fmt"
	"strings"

	gfs "cloud.google.com/go/firestore"

	"finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/seo"
)

const defaultCollection = "seoSettings"

// Firestore stores one document per site in a collection.
type Firestore struct {
	provider   *firestore.Provider
	collection string
}

// NewFirestore returns a store using the provider's client.
func NewFirestore(provider *firestore.Provider, collection string) *Firestore {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = defaultCollection
	}
	return &Firestore{provider: provider, collection: collection}
}

// Get implements Store.
func (f *Firestore) Get(ctx context.Context, siteID string) (seo.Settings, error) {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return seo.Settings{}, err
	}
	doc, err := f.provider.Doc(ctx, f.collection, id)
	if err != nil {
		return seo.Settings{}, err
	}
	snap, err := doc.Get(ctx)
	if firestore.IsNotFound(err) {
		return seo.DefaultSettings(id), nil
	}
	if err != nil {
		return seo.Settings{}, firestore.Classify("settings.get", err)
	}
	out := seo.DefaultSettings(id)
	if err := snap.DataTo(&out); err != nil {
		return seo.Settings{}, fmt.Errorf("settings: decode %s: %w", id, err)
	}
	out.SiteID = id
	return out, nil
}

// Save implements Store.
func (f *Firestore) Save(ctx context.Context, in seo.Settings) error {
	in, err := prepare(in)
	if err != nil {
		return err
	}
	doc, err := f.provider.Doc(ctx, f.collection, in.SiteID)
	if err != nil {
		return err
	}
	_, err = doc.Set(ctx, in)
	return firestore.Classify("settings.save", err)
}

// Delete implements Store.
func (f *Firestore) Delete(ctx context.Context, siteID string) error {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return err
	}
	doc, err := f.provider.Doc(ctx, f.collection, id)
	if err != nil {
		return err
	}
	// Delete on a missing document succeeds; the Exists precondition makes
	// it report NotFound instead.
	_, err = doc.Delete(ctx, gfs.Exists)
	if firestore.IsNotFound(err) {
		return ErrNotFound
	}
	return firestore.Classify("settings.delete", err)
}
