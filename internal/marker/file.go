package marker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"domainhc/internal/heartbeat"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]+`)

// FileStore keeps one empty file per marker; its mtime is the written-at time.
type FileStore struct {
	dir       string
	freshness time.Duration
	now       func() time.Time
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string, freshness time.Duration, opts ...FileOption) *FileStore {
	s := &FileStore{dir: dir, freshness: freshness, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileName is the marker file name for a domain and kind.
func FileName(domain string, kind heartbeat.Kind) string {
	return fmt.Sprintf("%s_check_%s", kind, unsafeChars.ReplaceAllString(domain, "_"))
}

func (s *FileStore) path(domain string, kind heartbeat.Kind) string {
	return filepath.Join(s.dir, FileName(domain, kind))
}

func (s *FileStore) IsValid(_ context.Context, domain string, kind heartbeat.Kind) (bool, error) {
	p := s.path(domain, kind)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat marker %s: %w", p, err)
	}

	if s.now().Sub(info.ModTime()) < s.freshness {
		return true, nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("remove stale marker %s: %w", p, err)
	}
	return false, nil
}

func (s *FileStore) Touch(_ context.Context, domain string, kind heartbeat.Kind) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create marker dir: %w", err)
	}
	p := s.path(domain, kind)
	now := s.now()
	if err := os.WriteFile(p, []byte(now.UTC().Format(time.RFC3339)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write marker %s: %w", p, err)
	}
	if err := os.Chtimes(p, now, now); err != nil {
		return fmt.Errorf("stamp marker %s: %w", p, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, f Filter) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	var targets []string
	if f.Domain != "" {
		for _, kind := range f.kinds() {
			targets = append(targets, s.path(f.Domain, kind))
		}
	} else {
		entries, err := os.ReadDir(s.dir)
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read marker dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !matchesKind(e.Name(), f.kinds()) {
				continue
			}
			targets = append(targets, filepath.Join(s.dir, e.Name()))
		}
	}

	removed := 0
	var errs []error
	for _, p := range targets {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			errs = append(errs, err)
		}
	}
	return removed, errors.Join(errs...)
}

func matchesKind(name string, kinds []heartbeat.Kind) bool {
	for _, k := range kinds {
		if strings.HasPrefix(name, string(k)+"_check_") {
			return true
		}
	}
	return false
}
