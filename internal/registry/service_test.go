package registry

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CheckAPI,Prompter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"domainhc/internal/heartbeat"
	"domainhc/internal/platform/logger"
	"domainhc/internal/registry/mocks"
	"domainhc/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	api      *mocks.MockCheckAPI
	prompter *mocks.MockPrompter
	path     string
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockCheckAPI(s.ctrl)
	s.prompter = mocks.NewMockPrompter(s.ctrl)
	s.path = filepath.Join(s.T().TempDir(), "domains.txt")
	s.ctx = context.Background()

	var err error
	s.service, err = New(s.path, s.api,
		WithLogger(logger.Discard()),
		WithPrompter(s.prompter),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) writeFile(content string) {
	s.Require().NoError(os.WriteFile(s.path, []byte(content), 0o644))
}

func (s *ServiceSuite) readFile() string {
	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	return string(raw)
}

func created(id string) heartbeat.Check {
	return heartbeat.Check{ID: id}
}

func (s *ServiceSuite) TestNew() {
	_, err := New("", s.api)
	s.Error(err)
	_, err = New(s.path, nil)
	s.Error(err)
}

func (s *ServiceSuite) TestCreateFromFile() {
	s.Run("fills missing ids and keeps comments", func() {
		s.writeFile("# header\n\nexample.com\nwww.example.com\nboth.com s:s0 e:e0\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "example.com", heartbeat.KindStatus).Return(created("s1"), nil)
		s.api.EXPECT().CreateCheck(gomock.Any(), "example.com", heartbeat.KindExpiry).Return(created("e1"), nil)
		s.api.EXPECT().CreateCheck(gomock.Any(), "www.example.com", heartbeat.KindStatus).Return(created("s2"), nil)

		sum, err := s.service.CreateFromFile(s.ctx, ModeBoth)
		s.Require().NoError(err)
		s.Equal(3, sum.Created)
		s.True(sum.Rewritten)
		s.Equal("# header\n\nexample.com s:s1 e:e1\nwww.example.com s:s2\nboth.com s:s0 e:e0\n", s.readFile())
	})

	s.Run("status only mode", func() {
		s.writeFile("a.com e:e1\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "a.com", heartbeat.KindStatus).Return(created("s1"), nil)

		_, err := s.service.CreateFromFile(s.ctx, ModeStatusOnly)
		s.Require().NoError(err)
		s.Equal("a.com s:s1 e:e1\n", s.readFile())
	})

	s.Run("expiry only mode never touches status", func() {
		s.writeFile("a.com\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "a.com", heartbeat.KindExpiry).Return(created("e1"), nil)

		_, err := s.service.CreateFromFile(s.ctx, ModeExpiryOnly)
		s.Require().NoError(err)
		s.Equal("a.com e:e1\n", s.readFile())
	})

	s.Run("nothing created leaves file untouched", func() {
		content := "a.com s:1 e:2   \n"
		s.writeFile(content)

		sum, err := s.service.CreateFromFile(s.ctx, ModeBoth)
		s.Require().NoError(err)
		s.False(sum.Rewritten)
		s.Equal(content, s.readFile())
	})

	s.Run("failures are counted and do not stop the batch", func() {
		s.writeFile("a.com\nb.com s:s\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "a.com", heartbeat.KindStatus).Return(heartbeat.Check{}, errors.New("boom"))
		s.api.EXPECT().CreateCheck(gomock.Any(), "a.com", heartbeat.KindExpiry).Return(created("e1"), nil)
		s.api.EXPECT().CreateCheck(gomock.Any(), "b.com", heartbeat.KindExpiry).Return(heartbeat.Check{}, errors.New("boom"))

		sum, err := s.service.CreateFromFile(s.ctx, ModeBoth)
		s.Require().NoError(err)
		s.Equal(1, sum.Created)
		s.Equal(2, sum.Failed)
		s.Equal("a.com e:e1\nb.com s:s\n", s.readFile())
	})
}

func (s *ServiceSuite) TestCreateDomain() {
	s.Run("appends absent domain", func() {
		s.writeFile("# list\na.com s:1\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "b.com", heartbeat.KindStatus).Return(created("s2"), nil)
		s.api.EXPECT().CreateCheck(gomock.Any(), "b.com", heartbeat.KindExpiry).Return(created("e2"), nil)

		sum, err := s.service.CreateDomain(s.ctx, "b.com", ModeBoth)
		s.Require().NoError(err)
		s.Equal(2, sum.Created)
		s.Equal("# list\na.com s:1\nb.com s:s2 e:e2\n", s.readFile())
	})

	s.Run("subdomain never gets an expiry check", func() {
		s.writeFile("")
		s.api.EXPECT().CreateCheck(gomock.Any(), "api.b.com", heartbeat.KindStatus).Return(created("s3"), nil)

		_, err := s.service.CreateDomain(s.ctx, "api.b.com", ModeBoth)
		s.Require().NoError(err)
		s.Equal("api.b.com s:s3\n", s.readFile())
	})

	s.Run("creates the file when missing", func() {
		s.Require().NoError(os.Remove(s.path))
		s.api.EXPECT().CreateCheck(gomock.Any(), "c.com", heartbeat.KindStatus).Return(created("s4"), nil)

		_, err := s.service.CreateDomain(s.ctx, "c.com", ModeStatusOnly)
		s.Require().NoError(err)
		s.Equal("c.com s:s4\n", s.readFile())
	})

	s.Run("existing entry only fills gaps on first line", func() {
		s.writeFile("a.com s:1\na.com\n")
		s.api.EXPECT().CreateCheck(gomock.Any(), "a.com", heartbeat.KindExpiry).Return(created("e1"), nil)

		_, err := s.service.CreateDomain(s.ctx, "a.com", ModeBoth)
		s.Require().NoError(err)
		s.Equal("a.com s:1 e:e1\n", s.readFile())
	})
}

func (s *ServiceSuite) TestSync() {
	s.Run("drops dangling ids and adds composite entries", func() {
		s.writeFile("# domains\nkeep.com s:k1 e:gone\nlost.com s:gone2\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{
			{ID: "k1", Name: "keep.com", Tags: []string{"status"}},
			{ID: "n2", Name: "new.com", Tags: []string{"expiry", "expiry_ok"}},
			{ID: "n1", Name: "new.com", Tags: []string{"status"}},
			{ID: "a1", Name: "alpha.com", Tags: []string{"vip"}},
		}, nil)

		sum, err := s.service.Sync(s.ctx)
		s.Require().NoError(err)
		s.Equal(2, sum.Added)
		s.Equal(1, sum.Dropped)
		s.Equal("# domains\nkeep.com s:k1\n\n"+SyncHeader+"\nalpha.com s:a1\nnew.com s:n1 e:n2\n", s.readFile())
	})

	s.Run("fills an empty slot of an existing entry", func() {
		s.writeFile("a.com s:s1\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{
			{ID: "s1", Name: "a.com", Tags: []string{"status"}},
			{ID: "e1", Name: "a.com", Tags: []string{"expiry"}},
		}, nil)

		_, err := s.service.Sync(s.ctx)
		s.Require().NoError(err)
		s.Equal("a.com s:s1 e:e1\n", s.readFile())
	})

	s.Run("in sync leaves file untouched", func() {
		s.writeFile("a.com e:e1 s:s1\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{
			{ID: "s1", Name: "a.com", Tags: []string{"status"}},
			{ID: "e1", Name: "a.com", Tags: []string{"expiry"}},
		}, nil)

		sum, err := s.service.Sync(s.ctx)
		s.Require().NoError(err)
		s.False(sum.Rewritten)
		s.Equal("a.com e:e1 s:s1\n", s.readFile())
	})

	s.Run("list failure aborts", func() {
		s.api.EXPECT().ListChecks(gomock.Any()).Return(nil, sentinel.ErrUnavailable)
		_, err := s.service.Sync(s.ctx)
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})
}

func (s *ServiceSuite) TestRemoveDomain() {
	checks := []heartbeat.Check{
		{ID: "s1", Name: "a.com"},
		{ID: "e1", Name: "a.com"},
		{ID: "s2", Name: "b.com"},
	}

	s.Run("confirmed removal deletes checks and lines", func() {
		s.writeFile("# c\na.com s:s1 e:e1\nb.com s:s2\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return(checks, nil)
		s.prompter.EXPECT().Prompt(gomock.Any()).Return("YES", nil)
		s.api.EXPECT().DeleteCheck(gomock.Any(), "s1").Return(nil)
		s.api.EXPECT().DeleteCheck(gomock.Any(), "e1").Return(errors.New("boom"))

		sum, err := s.service.RemoveDomain(s.ctx, "a.com", false)
		s.Require().NoError(err)
		s.Equal(1, sum.Deleted)
		s.Equal(1, sum.Failed)
		s.Equal("# c\nb.com s:s2\n", s.readFile())
	})

	s.Run("declined removal changes nothing", func() {
		s.writeFile("a.com s:s1 e:e1\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return(checks, nil)
		s.prompter.EXPECT().Prompt(gomock.Any()).Return("yes", nil)

		_, err := s.service.RemoveDomain(s.ctx, "a.com", false)
		s.ErrorIs(err, sentinel.ErrCancelled)
		s.Equal("a.com s:s1 e:e1\n", s.readFile())
	})

	s.Run("force skips the prompt", func() {
		s.writeFile("b.com s:s2\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return(checks, nil)
		s.api.EXPECT().DeleteCheck(gomock.Any(), "s2").Return(nil)

		_, err := s.service.RemoveDomain(s.ctx, "b.com", true)
		s.Require().NoError(err)
		s.Empty(s.readFile())
	})
}

func (s *ServiceSuite) TestRemoveAll() {
	s.Run("forced", func() {
		s.writeFile("a.com s:s1\n")
		s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{{ID: "s1"}, {ID: "x"}}, nil)
		s.api.EXPECT().DeleteCheck(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		sum, err := s.service.RemoveAll(s.ctx, true)
		s.Require().NoError(err)
		s.Equal(2, sum.Deleted)
		s.Equal(ClearedHeader+"\n", s.readFile())
	})

	s.Run("cancelled before listing", func() {
		s.writeFile("a.com s:s1\n")
		s.prompter.EXPECT().Prompt(gomock.Any()).Return("no", nil)

		_, err := s.service.RemoveAll(s.ctx, false)
		s.ErrorIs(err, sentinel.ErrCancelled)
		s.Equal("a.com s:s1\n", s.readFile())
	})
}

func (s *ServiceSuite) TestRemoveUnusedNeverPrompts() {
	s.writeFile("a.com s:s1 e:e1\n")
	s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{
		{ID: "s1", Name: "a.com"},
		{ID: "e1", Name: "a.com"},
		{ID: "orphan", Name: "gone.com"},
	}, nil)
	s.api.EXPECT().DeleteCheck(gomock.Any(), "orphan").Return(nil)

	sum, err := s.service.RemoveUnused(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, sum.Deleted)
	s.Equal("a.com s:s1 e:e1\n", s.readFile())
}

func (s *ServiceSuite) TestListChecksSortedCaseInsensitive() {
	s.api.EXPECT().ListChecks(gomock.Any()).Return([]heartbeat.Check{
		{Name: "beta.com"}, {Name: "Alpha.com"}, {Name: "alpha.net"},
	}, nil)

	checks, err := s.service.ListChecks(s.ctx)
	s.Require().NoError(err)
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	s.Equal([]string{"Alpha.com", "alpha.net", "beta.com"}, names)
}

func TestReaderPrompter(t *testing.T) {
	var out strings.Builder
	p := NewReaderPrompter(strings.NewReader("YES\r\n"), &out)
	answer, err := p.Prompt("Sure? ")
	assert.NoError(t, err)
	assert.Equal(t, "YES", answer)
	assert.Equal(t, "Sure? ", out.String())

	answer, err = NewReaderPrompter(strings.NewReader(""), io.Discard).Prompt("?")
	assert.NoError(t, err)
	assert.Empty(t, answer)
}
