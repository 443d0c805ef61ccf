// internal/matching/location.go
package matching

import "strings"

const (
	noLocationScore   = 50.0
	exactLocation     = 100.0
	containedLocation = 85.0
	nationwideScore   = 75.0
	nearbyScore       = 70.0
	unrelatedLocation = 30.0
)

var nationwideMarkers = []string{"shqipëri", "të gjithë", "nationwide"}

// nearbyCities is a hand-kept adjacency table, not a geocoder.
var nearbyCities = map[string][]string{
	"tiranë":  {"durrës", "vorë", "kamëz"},
	"durrës":  {"tiranë", "shijak"},
	"vlorë":   {"fier", "orikum"},
	"shkodër": {"lezhë", "koplik"},
	"elbasan": {"librazhd", "peqin"},
}

// ScoreLocation compares a volunteer's location with an opportunity's, which
// may list several comma-separated cities or a nationwide marker.
func ScoreLocation(userLocation, oppLocation string) float64 {
	user, opp := normalize(userLocation), normalize(oppLocation)
	if user == "" || opp == "" {
		return noLocationScore
	}
	if user == opp {
		return exactLocation
	}
	if strings.Contains(user, opp) || strings.Contains(opp, user) {
		return containedLocation
	}
	if containsAny(opp, nationwideMarkers) {
		return nationwideScore
	}
	for _, u := range splitCities(user) {
		for _, o := range splitCities(opp) {
			if areNearby(u, o) {
				return nearbyScore
			}
		}
	}
	return unrelatedLocation
}

func areNearby(a, b string) bool {
	return listed(nearbyCities[a], b) || listed(nearbyCities[b], a)
}

func listed(cities []string, city string) bool {
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}

func splitCities(loc string) []string {
	parts := strings.Split(loc, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}
