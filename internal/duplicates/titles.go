package duplicates

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"datencheck/internal/strmatch"
	id "datencheck/pkg/domain"
	pstrings "datencheck/pkg/platform/strings"
)

// topics maps a record-type concept to its spellings across the languages
// found in central European church and civil records.
var topics = map[string][]string{
	"birth":    {"geburt", "geburten", "geboren", "birth", "births", "nati", "natorum", "urodzenia", "urodzeni", "geboorte", "naissance", "naissances", "narozeni"},
	"baptism":  {"taufe", "taufen", "getauft", "baptism", "baptisms", "christening", "baptismi", "baptizatorum", "chrzty", "chrztu", "doop", "dopen", "bapteme", "baptemes", "krest"},
	"death":    {"tod", "tode", "tote", "toten", "sterbefälle", "sterbefall", "death", "deaths", "mortui", "mortuorum", "defunctorum", "zgony", "zgonów", "overlijden", "deces", "décès", "zemreli"},
	"burial":   {"begräbnis", "begräbnisse", "beerdigung", "beerdigungen", "burial", "burials", "sepulti", "sepultorum", "pochowani", "begraven", "sepulture", "sépulture", "pohřbení"},
	"marriage": {"heirat", "heiraten", "trauung", "trauungen", "ehe", "ehen", "marriage", "marriages", "copulati", "copulatorum", "matrimonium", "śluby", "sluby", "huwelijk", "huwelijken", "mariage", "mariages", "oddaní"},
	"church":   {"kirche", "kirchen", "kirchenbuch", "kirchenbücher", "church", "parish", "pfarrei", "pfarramt", "ecclesia", "parochia", "parafia", "kerk", "parochie", "église", "paroisse", "farnost", "fara"},
	"register": {"register", "registers", "buch", "bücher", "matrikel", "matriken", "book", "books", "liber", "libri", "ksiega", "księga", "ksiegi", "boek", "registre", "registres", "matrika"},
	"archive":  {"archiv", "archive", "archives", "archivum", "archiwum", "archief", "archivio"},
	"civil":    {"standesamt", "standesämter", "civil", "registry", "zivilstand", "usc", "burgerlijke", "stand", "etatcivil"},
	"census":   {"volkszählung", "census", "zensus", "spis", "volkstelling", "recensement", "sčítání"},
	"family":   {"familie", "familien", "family", "families", "familia", "rodzina", "gezin", "famille", "rodina"},
	"catholic": {"katholisch", "kath", "catholic", "catholica", "katolicki", "rk", "katholiek", "catholique"},
	"lutheran": {"evangelisch", "ev", "lutherisch", "luth", "protestant", "lutheran", "ewangelicki", "hervormd", "protestante"},
}

var stopWords = map[string]struct{}{
	"der": {}, "die": {}, "das": {}, "des": {}, "und": {}, "von": {}, "zu": {}, "im": {}, "in": {},
	"the": {}, "of": {}, "and": {}, "for": {},
	"de": {}, "la": {}, "le": {}, "et": {}, "van": {}, "het": {}, "en": {}, "i": {}, "w": {},
}

var topicIndex = buildTopicIndex()

func buildTopicIndex() map[string]string {
	idx := make(map[string]string)
	for topic, words := range topics {
		for _, w := range words {
			idx[normalizeTitle(w)] = topic
		}
	}
	return idx
}

// normalizeTitle lowercases a title and removes punctuation and symbols.
func normalizeTitle(title string) string {
	lower := cases.Lower(language.Und).String(title)
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			return ' '
		default:
			return r
		}
	}, lower)
	return strings.Join(strings.Fields(stripped), " ")
}

func titleWords(normalized string) []string {
	words := pstrings.UniqueFold(strings.Fields(normalized))
	out := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

// TitlesMatch compares two source or repository titles. It reports the
// match reason and the edit distance of the normalized titles.
func TitlesMatch(a, b string) (reason string, distance int, ok bool) {
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na == "" || nb == "" {
		return "", 0, false
	}
	distance = strmatch.Distance(na, nb)
	if na == nb {
		return ReasonExact, 0, true
	}
	limit := 2
	if max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb)) > 10 {
		limit = 4
	}
	if distance <= limit {
		return ReasonDistance, distance, true
	}
	if topicOverlap(titleWords(na), titleWords(nb)) {
		return ReasonTopic, distance, true
	}
	return "", distance, false
}

// topicOverlap reports whether enough words of the shorter title appear in
// the longer one: directly, through a shared topic, or by containment for
// words longer than 4 runes.
func topicOverlap(a, b []string) bool {
	shorter, longer := a, b
	if len(b) < len(a) {
		shorter, longer = b, a
	}
	if len(shorter) == 0 {
		return false
	}
	matched := 0
	for _, w := range shorter {
		for _, v := range longer {
			if wordsMatch(w, v) {
				matched++
				break
			}
		}
	}
	need := 0.7
	if len(shorter) <= 3 {
		need = 0.5
	}
	return float64(matched)/float64(len(shorter)) >= need
}

func wordsMatch(w, v string) bool {
	if w == v {
		return true
	}
	tw, wok := topicIndex[w]
	tv, vok := topicIndex[v]
	if wok && vok && tw == tv {
		return true
	}
	wn, vn := utf8.RuneCountInString(w), utf8.RuneCountInString(v)
	return (wn > 4 && strings.Contains(v, w)) || (vn > 4 && strings.Contains(w, v))
}

// FindSources returns pairs of source records with similar titles.
func (s *Service) FindSources(ctx context.Context, tree id.TreeID) ([]TitleMatch, error) {
	start := time.Now()
	if err := requireTree(tree); err != nil {
		return nil, err
	}
	sources, err := s.provider.Sources(ctx, tree)
	if err != nil {
		return nil, s.providerError(ctx, "sources", tree, err)
	}
	titled := make([]titledRecord, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			titled = append(titled, titledRecord{xref: src.Xref, title: src.Title})
		}
	}
	out := matchTitles(titled)
	s.observe(kindSource, start, len(out))
	return out, nil
}

// FindRepositories returns pairs of repository records with similar names.
func (s *Service) FindRepositories(ctx context.Context, tree id.TreeID) ([]TitleMatch, error) {
	start := time.Now()
	if err := requireTree(tree); err != nil {
		return nil, err
	}
	repos, err := s.provider.Repositories(ctx, tree)
	if err != nil {
		return nil, s.providerError(ctx, "repositories", tree, err)
	}
	titled := make([]titledRecord, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			titled = append(titled, titledRecord{xref: r.Xref, title: r.Name})
		}
	}
	out := matchTitles(titled)
	s.observe(kindRepository, start, len(out))
	return out, nil
}

type titledRecord struct {
	xref  id.Xref
	title string
}

func matchTitles(records []titledRecord) []TitleMatch {
	out := make([]TitleMatch, 0)
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]
			reason, dist, ok := TitlesMatch(a.title, b.title)
			if !ok {
				continue
			}
			out = append(out, TitleMatch{
				ID1: a.xref, Title1: a.title,
				ID2: b.xref, Title2: b.title,
				Distance: dist,
				Reason:   reason,
			})
		}
	}
	return out
}
