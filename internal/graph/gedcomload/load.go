// Package gedcomload reads a GEDCOM file into a graph.MemoryProvider.
package gedcomload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cacack/gedcom-go/decoder"
	"github.com/cacack/gedcom-go/gedcom"

	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

// Stats counts what a load added to the provider.
type Stats struct {
	Persons  int
	Families int
	Sources  int
	Places   int
}

// LoadFile opens path and loads it as tree.
func LoadFile(ctx context.Context, path string, tree id.TreeID, into *graph.MemoryProvider) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open gedcom: %w", err)
	}
	defer f.Close()
	return Load(ctx, f, tree, into)
}

// Load decodes a GEDCOM stream and adds its individuals, families, sources
// and coordinate-carrying places to into. Persons are added before families
// so family links resolve in one pass.
func Load(ctx context.Context, r io.Reader, tree id.TreeID, into *graph.MemoryProvider) (Stats, error) {
	var stats Stats
	doc, err := decoder.Decode(r)
	if err != nil {
		return stats, fmt.Errorf("decode gedcom: %w", err)
	}

	for _, src := range doc.Sources() {
		if src == nil {
			continue
		}
		into.AddSource(tree, graph.Source{
			Xref:   id.TrimXref(src.XRef),
			Title:  src.Title,
			Author: src.Author,
		})
		stats.Sources++
	}

	for i, indi := range doc.Individuals() {
		if indi == nil {
			continue
		}
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		p, places := convertIndividual(indi)
		into.AddPerson(tree, p)
		stats.Persons++
		stats.Places += addPlaces(into, tree, places)
	}

	for _, fam := range doc.Families() {
		if fam == nil {
			continue
		}
		f, places := convertFamily(fam)
		into.AddFamily(tree, f)
		stats.Families++
		stats.Places += addPlaces(into, tree, places)
	}
	return stats, nil
}

type place struct {
	name   string
	coords graph.Coordinates
}

func addPlaces(into *graph.MemoryProvider, tree id.TreeID, places []place) int {
	for _, p := range places {
		into.AddPlace(tree, p.name, p.coords)
	}
	return len(places)
}

func convertIndividual(indi *gedcom.Individual) (graph.Person, []place) {
	p := graph.Person{
		Xref: id.TrimXref(indi.XRef),
		Sex:  id.ParseSex(indi.Sex),
	}
	for _, n := range indi.Names {
		if n == nil {
			continue
		}
		p.Names = append(p.Names, graph.Name{
			Given:   strings.TrimSpace(n.Given),
			Surname: strings.TrimSpace(n.Surname),
			Full:    n.Full,
			Type:    "NAME",
		})
	}

	var places []place
	for _, ev := range indi.Events {
		if ev == nil {
			continue
		}
		fact, pl := convertEvent(ev)
		if pl != nil {
			places = append(places, *pl)
		}
		switch string(ev.Type) {
		case graph.TagBirth:
			if p.Birth == nil {
				p.Birth = fact
			}
		case graph.TagBaptism, "BAPM":
			if p.Baptism == nil {
				p.Baptism = fact
			}
		case graph.TagDeath:
			if p.Death == nil {
				p.Death = fact
			}
		case graph.TagBurial:
			if p.Burial == nil {
				p.Burial = fact
			}
		}
	}
	return p, places
}

func convertFamily(fam *gedcom.Family) (graph.Family, []place) {
	f := graph.Family{
		Xref:    id.TrimXref(fam.XRef),
		Husband: id.TrimXref(fam.Husband),
		Wife:    id.TrimXref(fam.Wife),
	}
	for _, c := range fam.Children {
		if x := id.TrimXref(c); x != "" {
			f.Children = append(f.Children, x)
		}
	}
	var places []place
	for _, ev := range fam.Events {
		if ev == nil || string(ev.Type) != graph.TagMarriage || f.Marriage != nil {
			continue
		}
		fact, pl := convertEvent(ev)
		f.Marriage = fact
		if pl != nil {
			places = append(places, *pl)
		}
	}
	return f, places
}

func convertEvent(ev *gedcom.Event) (*graph.DateFact, *place) {
	fact := &graph.DateFact{Date: strings.TrimSpace(ev.Date), Place: strings.TrimSpace(ev.Place)}
	var pl *place
	if ev.PlaceDetail != nil {
		if fact.Place == "" {
			fact.Place = strings.TrimSpace(ev.PlaceDetail.Name)
		}
		if c := ev.PlaceDetail.Coordinates; c != nil && fact.Place != "" {
			lat, latOK := parseCoordinate(c.Latitude)
			lon, lonOK := parseCoordinate(c.Longitude)
			if latOK && lonOK {
				pl = &place{name: fact.Place, coords: graph.Coordinates{Lat: lat, Lon: lon}}
			}
		}
	}
	for _, cit := range ev.SourceCitations {
		if cit == nil {
			continue
		}
		if x := id.TrimXref(cit.SourceXRef); x != "" {
			fact.Evidence.CitationXrefs = append(fact.Evidence.CitationXrefs, x)
			continue
		}
		if text := inlineText(cit); text != "" {
			fact.Evidence.InlineText = strings.TrimSpace(fact.Evidence.InlineText + " " + text)
		}
	}
	return fact, pl
}

func inlineText(cit *gedcom.SourceCitation) string {
	if cit.Data != nil && strings.TrimSpace(cit.Data.Text) != "" {
		return strings.TrimSpace(cit.Data.Text)
	}
	return strings.TrimSpace(cit.Page)
}

// parseCoordinate reads GEDCOM LATI/LONG values such as "N50.9375" or
// "W6.96". Plain signed decimals are accepted too.
func parseCoordinate(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ToUpper(raw))
	if s == "" {
		return 0, false
	}
	sign := 1.0
	switch s[0] {
	case 'N', 'E':
		s = s[1:]
	case 'S', 'W':
		sign, s = -1, s[1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return sign * v, true
}
