package coingecko

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func ms(t *testing.T, value string) float64 {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return float64(parsed.UnixMilli())
}

func TestBucketDailyPrices_LastObservationWins(t *testing.T) {
	points := [][]float64{
		{ms(t, "2024-03-01T08:00:00Z"), 100},
		{ms(t, "2024-03-01T20:00:00Z"), 110},
		{ms(t, "2024-03-02T12:00:00Z"), 120},
	}

	prices := bucketDailyPrices(points, "usd", day(t, "2024-03-01"), day(t, "2024-03-02"))

	require.Len(t, prices, 2)
	assert.Equal(t, day(t, "2024-03-01"), prices[0].Date)
	assert.Equal(t, 110.0, prices[0].Price)
	assert.Equal(t, "usd", prices[0].Currency)
	assert.Equal(t, 120.0, prices[1].Price)
}

func TestBucketDailyPrices_ForwardFillsGaps(t *testing.T) {
	points := [][]float64{
		{ms(t, "2024-03-01T12:00:00Z"), 100},
		// no observation on the 2nd or 3rd
		{ms(t, "2024-03-04T12:00:00Z"), 130},
	}

	prices := bucketDailyPrices(points, "usd", day(t, "2024-03-01"), day(t, "2024-03-04"))

	require.Len(t, prices, 4)
	assert.Equal(t, 100.0, prices[0].Price)
	assert.Equal(t, 100.0, prices[1].Price, "gap days carry the previous close")
	assert.Equal(t, 100.0, prices[2].Price)
	assert.Equal(t, 130.0, prices[3].Price)
}

func TestBucketDailyPrices_OmitsLeadingDaysWithoutData(t *testing.T) {
	points := [][]float64{
		{ms(t, "2024-03-03T12:00:00Z"), 300},
	}

	prices := bucketDailyPrices(points, "usd", day(t, "2024-03-01"), day(t, "2024-03-04"))

	require.Len(t, prices, 2)
	assert.Equal(t, day(t, "2024-03-03"), prices[0].Date)
	assert.Equal(t, day(t, "2024-03-04"), prices[1].Date)
}

func TestBucketDailyPrices_SingleDayRange(t *testing.T) {
	points := [][]float64{
		{ms(t, "2024-03-01T01:00:00Z"), 99},
		{ms(t, "2024-03-01T23:00:00Z"), 101},
	}

	prices := bucketDailyPrices(points, "eur", day(t, "2024-03-01"), day(t, "2024-03-01"))

	require.Len(t, prices, 1)
	assert.Equal(t, 101.0, prices[0].Price)
	assert.Equal(t, "eur", prices[0].Currency)
}

func TestBucketDailyPrices_NoPoints(t *testing.T) {
	prices := bucketDailyPrices(nil, "usd", day(t, "2024-03-01"), day(t, "2024-03-05"))
	assert.Empty(t, prices)
}

func TestBucketDailyPrices_IgnoresMalformedPoints(t *testing.T) {
	points := [][]float64{
		{ms(t, "2024-03-01T12:00:00Z")}, // missing price component
		{ms(t, "2024-03-01T13:00:00Z"), 100},
	}

	prices := bucketDailyPrices(points, "usd", day(t, "2024-03-01"), day(t, "2024-03-01"))

	require.Len(t, prices, 1)
	assert.Equal(t, 100.0, prices[0].Price)
}

func TestDateUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 New York on March 1 is already March 2 in UTC
	local := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, day(t, "2024-03-02"), dateUTC(local))
}
