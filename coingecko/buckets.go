package coingecko

import (
	"time"

	"github.com/drewzeee/sure/securities"
)

// dateUTC truncates t to its UTC calendar day.
func dateUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bucketDailyPrices reduces timestamped price observations to one quote per
// UTC calendar day over [startDay, endDay]. The market chart endpoint
// returns points at 5-minutely, hourly or daily granularity depending on
// the range; the import pipeline needs exactly one price per day.
//
// The last observation of each day wins. Days without any observation carry
// the previous day's price forward; leading days before the first
// observation are omitted.
func bucketDailyPrices(points [][]float64, currency string, startDay, endDay time.Time) []securities.Price {
	type observation struct {
		price    float64
		unixMs   int64
		observed bool
	}

	byDay := make(map[time.Time]observation)
	for _, point := range points {
		if len(point) < 2 {
			continue
		}
		unixMs := int64(point[0])
		day := dateUTC(time.UnixMilli(unixMs))

		prev, seen := byDay[day]
		if !seen || unixMs >= prev.unixMs {
			byDay[day] = observation{price: point[1], unixMs: unixMs, observed: true}
		}
	}

	var prices []securities.Price
	var last float64
	haveLast := false

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if obs, ok := byDay[day]; ok {
			last = obs.price
			haveLast = true
		}
		if !haveLast {
			continue
		}
		prices = append(prices, securities.Price{
			Date:     day,
			Price:    last,
			Currency: currency,
		})
	}

	return prices
}
