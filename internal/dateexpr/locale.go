package dateexpr

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Weekday and direction vocabularies per language. English is always
// consulted as a fallback so that "en" expressions work under any locale.
var (
	weekdayNames = map[string]map[string]time.Weekday{
		"en": {
			"sunday": time.Sunday, "sun": time.Sunday,
			"monday": time.Monday, "mon": time.Monday,
			"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
			"wednesday": time.Wednesday, "wed": time.Wednesday,
			"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
			"friday": time.Friday, "fri": time.Friday,
			"saturday": time.Saturday, "sat": time.Saturday,
		},
		"de": {
			"sonntag": time.Sunday, "montag": time.Monday,
			"dienstag": time.Tuesday, "mittwoch": time.Wednesday,
			"donnerstag": time.Thursday, "freitag": time.Friday,
			"samstag": time.Saturday, "sonnabend": time.Saturday,
		},
		"fr": {
			"dimanche": time.Sunday, "lundi": time.Monday,
			"mardi": time.Tuesday, "mercredi": time.Wednesday,
			"jeudi": time.Thursday, "vendredi": time.Friday,
			"samedi": time.Saturday,
		},
		"es": {
			"domingo": time.Sunday, "lunes": time.Monday,
			"martes": time.Tuesday, "miercoles": time.Wednesday, "miércoles": time.Wednesday,
			"jueves": time.Thursday, "viernes": time.Friday,
			"sabado": time.Saturday, "sábado": time.Saturday,
		},
	}

	directionWords = map[string]map[string]bool{
		"en": {"next": true, "last": false},
		"de": {"nächsten": true, "naechsten": true, "letzten": false},
		"fr": {"prochain": true, "dernier": false},
		"es": {"proximo": true, "próximo": true, "pasado": false},
	}
)

func localeKey(locale language.Tag) string {
	base, conf := locale.Base()
	if conf == language.No {
		return "en"
	}
	return base.String()
}

func lookupWeekday(name string, locale language.Tag) (time.Weekday, bool) {
	name = strings.ToLower(name)
	if table, ok := weekdayNames[localeKey(locale)]; ok {
		if wd, ok := table[name]; ok {
			return wd, true
		}
	}
	wd, ok := weekdayNames["en"][name]
	return wd, ok
}

func lookupDirection(word string, locale language.Tag) (forward, ok bool) {
	word = strings.ToLower(word)
	if table, ok := directionWords[localeKey(locale)]; ok {
		if fwd, ok := table[word]; ok {
			return fwd, true
		}
	}
	forward, ok = directionWords["en"][word]
	return forward, ok
}
