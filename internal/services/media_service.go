package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"bdc/internal/storage"
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file too large")
)

// DefaultMaxUpload is the 5 MiB cap the upload widget also enforces client side.
const DefaultMaxUpload int64 = 5 << 20

// MediaService validates uploads and stores them under unique names.
type MediaService struct {
	Store    storage.Store
	MaxBytes int64
	now      func() time.Time
}

func NewMediaService(st storage.Store, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUpload
	}
	return &MediaService{Store: st, MaxBytes: maxBytes, now: time.Now}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		k, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36[k.Int64()])
	}
	return b.String(), nil
}

// ObjectName builds "<unix-ms>-<7 base36 chars><ext>".
func (s *MediaService) ObjectName(ext string) (string, error) {
	r, err := randomSuffix(7)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), r, strings.ToLower(ext)), nil
}

// Upload checks the declared and sniffed type, enforces the size cap and stores
// the file. It returns the object's public URL.
func (s *MediaService) Upload(ctx context.Context, bucket, filename, declaredType string, body io.Reader) (string, error) {
	if !storage.KnownBucket(bucket) {
		bucket = storage.BucketProducts
	}
	if declaredType != "" && !strings.HasPrefix(declaredType, "image/") {
		return "", ErrNotImage
	}

	data, err := io.ReadAll(io.LimitReader(body, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}

	mt := mimetype.Detect(data)
	// SVG is XML that browsers will run scripts from, so it is not accepted.
	if !strings.HasPrefix(mt.String(), "image/") || mt.Is("image/svg+xml") {
		return "", ErrNotImage
	}

	ext := mt.Extension()
	if ext == "" {
		ext = filepath.Ext(filename)
	}
	name, err := s.ObjectName(ext)
	if err != nil {
		return "", err
	}
	ct := strings.SplitN(mt.String(), ";", 2)[0]
	if err := s.Store.Put(ctx, bucket, name, ct, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("store %s/%s: %w", bucket, name, err)
	}
	return s.Store.PublicURL(bucket, name), nil
}

// locate splits a public URL into bucket and object name. The name is the last
// path segment; the bucket is the segment before it when known, else fallback.
func locate(rawURL, fallback string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "", "", storage.ErrBadName
	}
	name := path.Base(u.Path)
	bucket := path.Base(path.Dir(u.Path))
	if !storage.KnownBucket(bucket) {
		bucket = fallback
	}
	if !storage.KnownBucket(bucket) {
		bucket = storage.BucketProducts
	}
	return bucket, name, nil
}

// Delete removes the object a public URL points at.
func (s *MediaService) Delete(ctx context.Context, bucket, rawURL string) error {
	b, name, err := locate(rawURL, bucket)
	if err != nil {
		return err
	}
	return s.Store.Delete(ctx, b, name)
}

// DeleteMany removes several URLs and reports how many went.
func (s *MediaService) DeleteMany(ctx context.Context, urls []string) (int, error) {
	n := 0
	for _, u := range urls {
		if err := s.Delete(ctx, "", u); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Gallery lists every stored image across buckets, newest first per bucket.
func (s *MediaService) Gallery(ctx context.Context) ([]storage.Object, error) {
	out := []storage.Object{}
	for _, b := range storage.Buckets {
		objs, err := s.Store.List(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", b, err)
		}
		out = append(out, objs...)
	}
	return out, nil
}
