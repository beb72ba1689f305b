package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDaysBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want Tier
	}{
		{-5, Expired},
		{0, Expired},
		{1, Under7d},
		{7, Under7d},
		{8, Under30d},
		{30, Under30d},
		{31, Under60d},
		{60, Under60d},
		{61, Under90d},
		{90, Under90d},
		{91, OK},
		{400, OK},
	}
	for _, tc := range cases {
		c := ClassifyDays(tc.days)
		assert.Equal(t, tc.want, c.Tier, "days=%d", tc.days)
		assert.Equal(t, tc.days, c.DaysLeft)
		assert.True(t, c.HasDays)
	}
}

func TestClassifyFloorsPartialDays(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	c := Classify(now.Add(7*24*time.Hour+23*time.Hour), now)
	assert.Equal(t, 7, c.DaysLeft)
	assert.Equal(t, Under7d, c.Tier)

	c = Classify(now.Add(-12*time.Hour), now)
	assert.Equal(t, -1, c.DaysLeft)
	assert.Equal(t, Expired, c.Tier)
}

func TestFailedClassification(t *testing.T) {
	c := Failed()
	assert.Equal(t, LookupFailed, c.Tier)
	assert.False(t, c.HasDays)
	assert.Equal(t, "status=lookup_failed", c.Payload())
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "status=expires_in_<30d&days_left=12", ClassifyDays(12).Payload())
	assert.Equal(t, "status=expired&days_left=-3", ClassifyDays(-3).Payload())
}

func TestFailing(t *testing.T) {
	assert.True(t, Expired.Failing())
	assert.True(t, Under7d.Failing())
	assert.True(t, LookupFailed.Failing())
	for _, tier := range []Tier{Under30d, Under60d, Under90d, OK} {
		assert.False(t, tier.Failing(), tier.Tag())
	}
}

func TestTagRoundTrip(t *testing.T) {
	for _, tag := range ManagedTags() {
		tier, err := ParseTag(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, tier.Tag())
		assert.True(t, IsManaged(tag))
	}
	_, err := ParseTag("vip")
	assert.Error(t, err)
	assert.False(t, IsManaged("expiry"))
	assert.Len(t, ManagedTags(), 7)
}
