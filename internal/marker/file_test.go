package marker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"domainhc/internal/heartbeat"
)

type FileStoreSuite struct {
	suite.Suite
	dir   string
	now   time.Time
	store *FileStore
	ctx   context.Context
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "markers")
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewFileStore(s.dir, 23*time.Hour, WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *FileStoreSuite) TestFreshness() {
	s.Run("missing marker is not valid", func() {
		ok, err := s.store.IsValid(s.ctx, "example.com", heartbeat.KindExpiry)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("valid right after touch", func() {
		s.Require().NoError(s.store.Touch(s.ctx, "example.com", heartbeat.KindExpiry))
		ok, err := s.store.IsValid(s.ctx, "example.com", heartbeat.KindExpiry)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("valid one second short of the window", func() {
		s.now = s.now.Add(23*time.Hour - time.Second)
		ok, err := s.store.IsValid(s.ctx, "example.com", heartbeat.KindExpiry)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("stale marker is invalid and removed", func() {
		s.now = s.now.Add(2 * time.Second)
		ok, err := s.store.IsValid(s.ctx, "example.com", heartbeat.KindExpiry)
		s.Require().NoError(err)
		s.False(ok)
		s.NoFileExists(filepath.Join(s.dir, "expiry_check_example.com"))
	})
}

func (s *FileStoreSuite) TestKindsAreIndependent() {
	s.Require().NoError(s.store.Touch(s.ctx, "example.com", heartbeat.KindExpiry))

	ok, err := s.store.IsValid(s.ctx, "example.com", heartbeat.KindStatus)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *FileStoreSuite) TestFileNameSanitizes() {
	s.Equal("expiry_check_b_cher.example", FileName("bücher.example", heartbeat.KindExpiry))
	s.Equal("status_check_a_b.com", FileName("a/b.com", heartbeat.KindStatus))
}

func (s *FileStoreSuite) TestDelete() {
	touch := func(domain string, kind heartbeat.Kind) {
		s.Require().NoError(s.store.Touch(s.ctx, domain, kind))
	}
	reset := func() {
		s.Require().NoError(os.RemoveAll(s.dir))
		touch("a.com", heartbeat.KindExpiry)
		touch("a.com", heartbeat.KindStatus)
		touch("b.com", heartbeat.KindExpiry)
	}

	s.Run("empty filter is rejected", func() {
		_, err := s.store.Delete(s.ctx, Filter{})
		s.ErrorIs(err, ErrEmptyFilter)
	})

	s.Run("by domain removes both kinds", func() {
		reset()
		n, err := s.store.Delete(s.ctx, Filter{Domain: "a.com"})
		s.Require().NoError(err)
		s.Equal(2, n)
	})

	s.Run("by domain and kind", func() {
		reset()
		n, err := s.store.Delete(s.ctx, Filter{Domain: "a.com", Kind: heartbeat.KindStatus})
		s.Require().NoError(err)
		s.Equal(1, n)
		s.FileExists(filepath.Join(s.dir, "expiry_check_a.com"))
	})

	s.Run("by kind", func() {
		reset()
		n, err := s.store.Delete(s.ctx, Filter{Kind: heartbeat.KindExpiry})
		s.Require().NoError(err)
		s.Equal(2, n)
		s.FileExists(filepath.Join(s.dir, "status_check_a.com"))
	})

	s.Run("all leaves foreign files alone", func() {
		reset()
		s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "README"), nil, 0o644))
		n, err := s.store.Delete(s.ctx, Filter{All: true})
		s.Require().NoError(err)
		s.Equal(3, n)
		s.FileExists(filepath.Join(s.dir, "README"))
	})

	s.Run("missing directory deletes nothing", func() {
		s.Require().NoError(os.RemoveAll(s.dir))
		n, err := s.store.Delete(s.ctx, Filter{All: true})
		s.Require().NoError(err)
		s.Zero(n)
	})
}
