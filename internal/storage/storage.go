// Package storage holds uploaded images. Objects live in named buckets and are
// addressed by a flat file name; callers never see the backend's layout.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

const (
	BucketProducts = "products"
	BucketBanners  = "banners"
)

var Buckets = []string{BucketProducts, BucketBanners}

var (
	ErrBadName = errors.New("invalid object name")
	// ErrExists is returned by Put when the name is already taken.
	ErrExists = errors.New("object already exists")
)

// Object is one stored file as listed in the gallery.
type Object struct {
	Bucket     string    `json:"bucket"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	URL        string    `json:"url"`
}

type Store interface {
	Put(ctx context.Context, bucket, name, contentType string, body io.Reader) error
	Delete(ctx context.Context, bucket, name string) error
	List(ctx context.Context, bucket string) ([]Object, error)
	PublicURL(bucket, name string) string
}

// KnownBucket reports whether b is one of Buckets.
func KnownBucket(b string) bool {
	for _, k := range Buckets {
		if k == b {
			return true
		}
	}
	return false
}

// checkName rejects anything that could escape the bucket.
func checkName(bucket, name string) error {
	if !KnownBucket(bucket) {
		return ErrBadName
	}
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return ErrBadName
	}
	return nil
}
