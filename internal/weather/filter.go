package weather

import (
	"sort"
	"time"
)

// Filter returns the rows for airport with start <= date <= end, ordered by
// date ascending. Rows sharing a date keep their input order.
func Filter(joined []JoinedRecord, airport string, start, end time.Time) []JoinedRecord {
	result := make([]JoinedRecord, 0)
	for _, r := range joined {
		if r.AirportCode != airport {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// AvailableAirports returns the distinct airport codes in flights, sorted.
func AvailableAirports(flights []FlightDelayRecord) []string {
	seen := make(map[string]struct{})
	airports := make([]string, 0)
	for _, f := range flights {
		if _, ok := seen[f.AirportCode]; ok {
			continue
		}
		seen[f.AirportCode] = struct{}{}
		airports = append(airports, f.AirportCode)
	}
	sort.Strings(airports)
	return airports
}

// DateRange returns the earliest and latest flight dates. ok is false when
// flights is empty.
func DateRange(flights []FlightDelayRecord) (from, to time.Time, ok bool) {
	if len(flights) == 0 {
		return time.Time{}, time.Time{}, false
	}
	from, to = flights[0].Date, flights[0].Date
	for _, f := range flights[1:] {
		if f.Date.Before(from) {
			from = f.Date
		}
		if f.Date.After(to) {
			to = f.Date
		}
	}
	return from, to, true
}
