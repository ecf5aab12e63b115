package weather

import "strings"

// fixedStations are airports missing from the code table. They are applied
// after the table and always win.
var fixedStations = map[string]string{
	"SFO": "KSFO",
	"PHX": "KPHX",
}

// BuildMapping creates the IATA to ICAO lookup. Later entries overwrite
// earlier ones with the same IATA code.
func BuildMapping(entries []AirportCodeEntry) map[string]string {
	mapping := make(map[string]string, len(entries)+len(fixedStations))
	for _, e := range entries {
		iata := strings.TrimSpace(e.IATA)
		icao := strings.TrimSpace(e.ICAO)
		if iata == "" || icao == "" {
			continue
		}
		mapping[iata] = icao
	}
	for iata, icao := range fixedStations {
		mapping[iata] = icao
	}
	return mapping
}
