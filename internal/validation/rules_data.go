package validation

import (
	"fmt"
	"math"
	"strings"

	"datencheck/internal/graph"
)

const (
	earthRadiusKm = 6371.0
	// longDistanceKm is reported as a notable migration.
	longDistanceKm = 1000.0
	// maxTravelKmPerDay is the farthest plausible distance between events
	// less than two days apart.
	maxTravelKmPerDay = 500.0
)

func (r *run) missingData() []Issue {
	p := r.in.Person
	if p == nil {
		return nil
	}
	_, hasBirth := p.Birth.Window()
	_, hasDeath := p.Death.Window()
	hasChildren := false
	for _, sf := range r.in.SpouseFamilies {
		if sf.Family != nil && len(sf.Family.Children) > 0 {
			hasChildren = true
			break
		}
	}

	var out []Issue
	if hasChildren && !hasBirth {
		out = append(out, issue(CodeMissingBirthDate, TypeMissingBirthDate, SeverityInfo,
			fmt.Sprintf("Person %q has children but no birth date", p.FullName())))
	}
	if hasDeath && !hasBirth {
		out = append(out, issue(CodeDeathWithoutBirth, TypeDeathWithoutBirth, SeverityWarning,
			fmt.Sprintf("Person %q has a death date but no birth date", p.FullName())))
	}
	return out
}

// geographic compares the coordinates of the birth and death places.
func (r *run) geographic() []Issue {
	p := r.in.Person
	if p == nil {
		return nil
	}
	birthPlace, birthAt, ok := r.place(p.Birth)
	if !ok {
		return nil
	}
	deathPlace, deathAt, ok := r.place(p.Death)
	if !ok {
		return nil
	}
	km := Haversine(birthAt, deathAt)
	if km <= 0 {
		return nil
	}

	var out []Issue
	rounded := int(math.Round(km))
	if km > longDistanceKm {
		out = append(out, issue(CodeLongDistance, TypeGeographicInfo, SeverityInfo,
			fmt.Sprintf("Birth (%s) and death (%s) are about %d km apart", birthPlace, deathPlace, rounded),
		).with(map[string]any{"from": birthPlace, "to": deathPlace, "km": rounded}))
	}
	birth, bok := p.Birth.Window()
	death, dok := p.Death.Window()
	if bok && dok {
		if days := death.Min - birth.Min; days >= 0 && days < 2 && km > maxTravelKmPerDay {
			out = append(out, issue(CodeImpossibleTravel, TypeGeographic, SeverityError,
				fmt.Sprintf("Impossible travel: %d km in less than 2 days between %q and %q", rounded, birthPlace, deathPlace),
			).with(map[string]any{"from": birthPlace, "to": deathPlace, "km": rounded, "days": days}))
		}
	}
	return out
}

func (r *run) place(f *graph.DateFact) (string, graph.Coordinates, bool) {
	if f == nil {
		return "", graph.Coordinates{}, false
	}
	name := strings.TrimSpace(f.Place)
	if name == "" {
		return "", graph.Coordinates{}, false
	}
	c, ok := r.in.Places[name]
	return name, c, ok
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b graph.Coordinates) float64 {
	rad := math.Pi / 180
	dLat := (b.Lat - a.Lat) * rad
	dLon := (b.Lon - a.Lon) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*rad)*math.Cos(b.Lat*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
