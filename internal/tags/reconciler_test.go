package tags

//go:generate mockgen -source=reconciler.go -destination=mocks/mocks.go -package=mocks CheckAPI

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"domainhc/internal/expiry"
	"domainhc/internal/heartbeat"
	"domainhc/internal/platform/logger"
	"domainhc/internal/tags/mocks"
	"domainhc/pkg/testutil"
)

func TestReconcile(t *testing.T) {
	cases := []struct {
		name        string
		current     []string
		desired     expiry.Tier
		want        []string
		wantChanged bool
	}{
		{"replaces managed tag and keeps foreign", []string{"vip", "expiry_ok"}, expiry.Under30d, []string{"expires_in_<30d", "vip"}, true},
		{"no-op when already current", []string{"expiry", "expiry_ok"}, expiry.OK, []string{"expiry", "expiry_ok"}, false},
		{"adds to empty set", nil, expiry.LookupFailed, []string{"lookup_failed"}, true},
		{"collapses several managed tags", []string{"expired", "expiry", "expiry_ok", "lookup_failed"}, expiry.OK, []string{"expiry", "expiry_ok"}, true},
		{"keeps lookalike foreign tags", []string{"expires_soon", "expiry"}, expiry.Expired, []string{"expired", "expires_soon", "expiry"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := Reconcile(tc.current, tc.desired)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantChanged, changed)
		})
	}
}

type ReconcilerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	api        *mocks.MockCheckAPI
	reconciler *Reconciler
	ctx        context.Context
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockCheckAPI(s.ctrl)
	var err error
	s.reconciler, err = New(s.api, WithLogger(logger.Discard()))
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ReconcilerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReconcilerSuite) TestNewRequiresAPI() {
	_, err := New(nil)
	s.Error(err)
}

func (s *ReconcilerSuite) TestApplyTwiceUpdatesOnce() {
	remote := []string{"expiry", "vip", "expiry_ok"}
	s.api.EXPECT().GetCheck(gomock.Any(), "id-1").DoAndReturn(
		func(context.Context, string) (heartbeat.Check, error) {
			return heartbeat.Check{ID: "id-1", Tags: remote}, nil
		}).Times(2)
	s.api.EXPECT().UpdateTags(gomock.Any(), "id-1", []string{"expires_in_<30d", "expiry", "vip"}).DoAndReturn(
		func(_ context.Context, _ string, tags []string) error {
			remote = tags
			return nil
		}).Times(1)

	updated, err := s.reconciler.Apply(s.ctx, "id-1", expiry.Under30d)
	s.Require().NoError(err)
	s.True(updated)

	updated, err = s.reconciler.Apply(s.ctx, "id-1", expiry.Under30d)
	s.Require().NoError(err)
	s.False(updated)
}

func (s *ReconcilerSuite) TestFetchFailureAborts() {
	s.api.EXPECT().GetCheck(gomock.Any(), "id-1").Return(heartbeat.Check{}, errors.New("boom"))

	_, err := s.reconciler.Apply(s.ctx, "id-1", expiry.OK)
	s.ErrorContains(err, "fetch tags")
}

func (s *ReconcilerSuite) TestUpdateFailureIsReported() {
	s.api.EXPECT().GetCheck(gomock.Any(), "id-1").Return(heartbeat.Check{Tags: []string{"expiry"}}, nil)
	s.api.EXPECT().UpdateTags(gomock.Any(), "id-1", gomock.Any()).Return(errors.New("boom"))

	updated, err := s.reconciler.Apply(s.ctx, "id-1", expiry.OK)
	s.False(updated)
	s.ErrorContains(err, "update tags")
}

func TestTierMovesBetweenRuns(t *testing.T) {
	testutil.Given(t, "a check tagged for the 60 day tier", func(t *testing.T) {
		current := []string{"expiry", "expires_in_<60d", "vip"}

		testutil.When(t, "the domain crosses into the 30 day tier", func(t *testing.T) {
			next, changed := Reconcile(current, expiry.Under30d)

			testutil.Then(t, "the old tier tag is replaced and unmanaged tags survive", func(t *testing.T) {
				assert.True(t, changed)
				assert.Equal(t, []string{"expires_in_<30d", "expiry", "vip"}, next)
			})

			testutil.Then(t, "reconciling again is a no-op", func(t *testing.T) {
				again, changed := Reconcile(next, expiry.Under30d)
				assert.False(t, changed)
				assert.Equal(t, next, again)
			})
		})
	})
}
