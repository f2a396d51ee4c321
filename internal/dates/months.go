package dates

import "time"

// gedcomMonths are the standard GEDCOM month codes, index = time.Month - 1.
var gedcomMonths = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// qualifiers are the GEDCOM date modifiers recognised as a prefix.
var qualifiers = []string{"ABT", "CAL", "EST", "AFT", "BEF", "BET", "AND", "FROM", "TO", "INT"}

// monthNames maps lowercase month spellings (German, English, French, Dutch,
// Latin, Polish and numeric forms) onto a month.
var monthNames = map[string]time.Month{
	"januar": time.January, "jänner": time.January, "january": time.January, "jan": time.January,
	"janvier": time.January, "januari": time.January, "januarii": time.January, "stycznia": time.January,
	"01": time.January, "1": time.January,

	"februar": time.February, "feber": time.February, "february": time.February, "feb": time.February,
	"février": time.February, "fevrier": time.February, "februari": time.February, "februarii": time.February,
	"lutego": time.February, "02": time.February, "2": time.February,

	"märz": time.March, "maerz": time.March, "marz": time.March, "march": time.March, "mar": time.March,
	"mars": time.March, "maart": time.March, "martii": time.March, "marca": time.March,
	"03": time.March, "3": time.March,

	"april": time.April, "apr": time.April, "avril": time.April, "aprilis": time.April,
	"kwietnia": time.April, "04": time.April, "4": time.April,

	"mai": time.May, "may": time.May, "mei": time.May, "maii": time.May, "maja": time.May,
	"05": time.May, "5": time.May,

	"juni": time.June, "june": time.June, "jun": time.June, "juin": time.June, "junii": time.June,
	"czerwca": time.June, "06": time.June, "6": time.June,

	"juli": time.July, "july": time.July, "jul": time.July, "juillet": time.July, "julii": time.July,
	"lipca": time.July, "07": time.July, "7": time.July,

	"august": time.August, "aug": time.August, "août": time.August, "aout": time.August,
	"augustus": time.August, "augusti": time.August, "sierpnia": time.August,
	"08": time.August, "8": time.August,

	"september": time.September, "sep": time.September, "sept": time.September, "septembre": time.September,
	"septembris": time.September, "września": time.September, "wrzesnia": time.September,
	"09": time.September, "9": time.September,

	"oktober": time.October, "okt": time.October, "october": time.October, "oct": time.October,
	"octobre": time.October, "octobris": time.October, "października": time.October,
	"pazdziernika": time.October, "10": time.October,

	"november": time.November, "nov": time.November, "novembre": time.November,
	"novembris": time.November, "listopada": time.November, "11": time.November,

	"dezember": time.December, "dez": time.December, "december": time.December, "dec": time.December,
	"décembre": time.December, "decembre": time.December, "decembris": time.December,
	"grudnia": time.December, "12": time.December,
}

// MonthCode returns the GEDCOM code for m, or "" for an invalid month.
func MonthCode(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return gedcomMonths[m-1]
}

func isGedcomMonth(upper string) bool {
	for _, m := range gedcomMonths {
		if m == upper {
			return true
		}
	}
	return false
}

func isQualifier(upper string) bool {
	for _, q := range qualifiers {
		if q == upper {
			return true
		}
	}
	return false
}
