package dt

import (
	"time"

	"golang.org/x/text/language"
)

var monthNames = [][12]string{
	{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	{"Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre"},
}

var monthShortNames = [][12]string{
	{"Jan.", "Feb.", "Mar.", "Apr.", "May", "June", "July", "Aug.", "Sep.", "Oct.", "Nov.", "Dec."},
	{"Jan.", "Fév.", "Mar.", "Avr.", "Mai", "Juin", "Juil.", "Août", "Sep.", "Oct.", "Nov.", "Déc."},
}

// English comes first so it is the fallback.
var monthMatcher = language.NewMatcher([]language.Tag{language.English, language.French})

// MonthName returns the full name of m in the language closest to tag.
// Only English and French are available; other languages get English.
func MonthName(m time.Month, tag language.Tag) string {
	return lookupMonth(monthNames, m, tag)
}

// ShortMonthName returns the abbreviated name of m, e.g. "Fév." in French.
func ShortMonthName(m time.Month, tag language.Tag) string {
	return lookupMonth(monthShortNames, m, tag)
}

func lookupMonth(table [][12]string, m time.Month, tag language.Tag) string {
	if m < time.January || m > time.December {
		return ""
	}
	_, idx, conf := monthMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return table[idx][m-1]
}
