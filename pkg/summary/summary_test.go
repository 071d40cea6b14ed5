package summary

import (
	"testing"

	"github.com/dependabot-report/pkg/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize("web", mixedRecords(), refNow)
	require.NoError(t, err)

	assert.Equal(t, "web", s.Name)
	assert.Equal(t, 2, s.Priority)
	assert.Equal(t, 5, s.Open.Total)
	assert.Equal(t, 2, s.Fixed.Total)
	assert.Equal(t, 1, s.Dismissed.Total)
	assert.Equal(t, 1, s.SLO.Exceeded[alert.SeverityCritical])
	assert.Equal(t, 1, s.SLO.Exceeded[alert.SeverityHigh])
	assert.Equal(t, 0, s.SLO.Exceeded[alert.SeverityMedium])
	assert.Equal(t, 1, s.SLO.Exceeded[alert.SeverityLow])
	assert.InDelta(t, 50.0, s.SLO.Percentage[alert.SeverityLow], 0.01)
}

func TestSummarizeFailsOnMalformedRecord(t *testing.T) {
	records := append(mixedRecords(), alert.Record{State: alert.StateFixed})
	_, err := Summarize("web", records, refNow)
	assert.ErrorIs(t, err, alert.ErrMalformedRecord)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 9, Priority(StateTally{Critical: 4, High: 5, Medium: 10, Low: 10}))
}
