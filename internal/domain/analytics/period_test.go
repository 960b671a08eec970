package analytics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
)

func TestResolvePeriod_ClavePorDefecto(t *testing.T) {
	p, err := analytics.ResolvePeriod("", "", "", analytics.Period30d, testNow)
	require.NoError(t, err)

	assert.Equal(t, analytics.Period30d, p.Key)
	assert.Equal(t, "Last 30 days", p.Label)
	assert.Equal(t, testNow.AddDate(0, 0, -30), p.Start)
	assert.Equal(t, testNow, p.End)
}

func TestResolvePeriod_Todo(t *testing.T) {
	p, err := analytics.ResolvePeriod(analytics.PeriodAll, "", "", analytics.Period30d, testNow)
	require.NoError(t, err)

	assert.True(t, p.All)
	assert.True(t, p.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolvePeriod_RangoPersonalizadoIncluyeDiaFinal(t *testing.T) {
	p, err := analytics.ResolvePeriod("", "2026-01-01", "2026-01-31", analytics.Period30d, testNow)
	require.NoError(t, err)

	assert.Equal(t, analytics.PeriodCustom, p.Key)
	assert.Equal(t, "2026-01-01 to 2026-01-31", p.Label)
	assert.True(t, p.Contains(time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolvePeriod_Errores(t *testing.T) {
	cases := []struct {
		name, key, start, end string
	}{
		{"clave desconocida", "2w", "", ""},
		{"fecha mal formada", "", "01/02/2026", ""},
		{"inicio posterior al fin", "", "2026-02-01", "2026-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := analytics.ResolvePeriod(tc.key, tc.start, tc.end, analytics.Period30d, testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}
