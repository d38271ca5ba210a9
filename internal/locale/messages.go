package locale

import "time"

// dateNames holds the calendar vocabulary of one date locale
// (en-GB for English, fr for French).
type dateNames struct {
	months      [12]string
	monthsShort [12]string
	days        [7]string
	daysShort   [7]string
}

var names = map[Lang]dateNames{
	English: {
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		monthsShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		days:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		daysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
	French: {
		months: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		monthsShort: [12]string{
			"janv.", "févr.", "mars", "avr.", "mai", "juin",
			"juil.", "août", "sept.", "oct.", "nov.", "déc.",
		},
		days:      [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		daysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	},
}

var messages = map[Lang]map[string]string{
	English: {
		"fields.startDate":                    "Start Date",
		"fields.countryCodeForPublicHolidays": "Country Code for Public Holidays",
		"fields.weeksStartOn":                 "Weeks Start On",
		"publicHolidays":                      "Public Holidays",
		"noHolidays":                          "No public holidays in this period.",
		"language":                            "Language",
		"apply":                               "Apply",
	},
	French: {
		"fields.startDate":                    "Date de début",
		"fields.countryCodeForPublicHolidays": "Code du pays pour les jours fériés",
		"fields.weeksStartOn":                 "Les semaines commencent le",
		"publicHolidays":                      "Jours fériés",
		"noHolidays":                          "Aucun jour férié sur cette période.",
		"language":                            "Langue",
		"apply":                               "Appliquer",
	},
}

func init() {
	// weekDays.N mirrors the full day names, capitalised.
	for lang, n := range names {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			messages[lang]["weekDays."+string(rune('0'+wd))] = capitalizeFirst(n.days[wd])
		}
	}
}
