package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local writes objects under Root/<bucket>/<name>. The HTTP layer serves Root at
// /media, so URLs are BaseURL + "/media/<bucket>/<name>".
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	for _, b := range Buckets {
		if err := os.MkdirAll(filepath.Join(root, b), 0o755); err != nil {
			return nil, err
		}
	}
	return &Local{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) path(bucket, name string) (string, error) {
	if err := checkName(bucket, name); err != nil {
		return "", err
	}
	return filepath.Join(l.Root, bucket, name), nil
}

// Put refuses to overwrite an existing object.
func (l *Local) Put(_ context.Context, bucket, name, _ string, body io.Reader) error {
	p, err := l.path(bucket, name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s/%s: %w", bucket, name, ErrExists)
	}
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return err
	}
	return f.Close()
}

// Delete is a no-op for objects that are already gone.
func (l *Local) Delete(_ context.Context, bucket, name string) error {
	p, err := l.path(bucket, name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the bucket's objects, newest first.
func (l *Local) List(_ context.Context, bucket string) ([]Object, error) {
	if !KnownBucket(bucket) {
		return nil, ErrBadName
	}
	entries, err := os.ReadDir(filepath.Join(l.Root, bucket))
	if errors.Is(err, fs.ErrNotExist) {
		return []Object{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Object{
			Bucket:     bucket,
			Name:       e.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime().UTC(),
			URL:        l.PublicURL(bucket, e.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModifiedAt.After(out[j].ModifiedAt) })
	return out, nil
}

func (l *Local) PublicURL(bucket, name string) string {
	return l.BaseURL + "/media/" + bucket + "/" + name
}
