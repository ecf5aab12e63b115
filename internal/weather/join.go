package weather

// stationDay is the join key: ICAO station plus calendar date.
type stationDay string

func keyOf(station string, day string) stationDay {
	return stationDay(station + "|" + day)
}

// indexWeather keys weather rows by station and day. The first row for a key
// wins; shadowed reports how many later rows were ignored.
func indexWeather(weather []WeatherRecord) (index map[stationDay]int, shadowed int) {
	index = make(map[stationDay]int, len(weather))
	for i, w := range weather {
		k := keyOf(w.StationID, FormatDay(w.Date))
		if _, exists := index[k]; exists {
			shadowed++
			continue
		}
		index[k] = i
	}
	return index, shadowed
}

// Join left-joins flights to weather on (mapping[airport], date). The result
// has one row per flight record, in input order. Flights whose airport has no
// mapping or no observation for the day keep nil weather fields.
func Join(flights []FlightDelayRecord, weather []WeatherRecord, mapping map[string]string) []JoinedRecord {
	index, _ := indexWeather(weather)

	joined := make([]JoinedRecord, 0, len(flights))
	for _, f := range flights {
		jr := JoinedRecord{FlightDelayRecord: f}

		station, ok := mapping[f.AirportCode]
		if ok {
			jr.StationID = station
			if i, found := index[keyOf(station, FormatDay(f.Date))]; found {
				w := weather[i]
				jr.Matched = true
				jr.PrecipitationIn = w.PrecipitationIn
				jr.WindAvgMPH = w.WindAvgMPH
				jr.VisibilityMi = w.VisibilityMi
				jr.TempMaxF = w.TempMaxF
			}
		}

		joined = append(joined, jr)
	}
	return joined
}
