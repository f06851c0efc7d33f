package user

import "time"

// zodiacRange maps a western zodiac sign to its date span. Capricorn wraps
// the year end and is handled as the fallback.
type zodiacRange struct {
	sign       string
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

var zodiacRanges = []zodiacRange{
	{"Aries", time.March, 21, time.April, 19},
	{"Taurus", time.April, 20, time.May, 20},
	{"Gemini", time.May, 21, time.June, 20},
	{"Cancer", time.June, 21, time.July, 22},
	{"Leo", time.July, 23, time.August, 22},
	{"Virgo", time.August, 23, time.September, 22},
	{"Libra", time.September, 23, time.October, 22},
	{"Scorpio", time.October, 23, time.November, 21},
	{"Sagittarius", time.November, 22, time.December, 21},
	{"Aquarius", time.January, 20, time.February, 18},
	{"Pisces", time.February, 19, time.March, 20},
}

// horoscopeAnimals maps each zodiac sign to its animal.
var horoscopeAnimals = map[string]string{
	"Aries":       "Ram",
	"Taurus":      "Bull",
	"Gemini":      "Monkey",
	"Cancer":      "Crab",
	"Leo":         "Lion",
	"Virgo":       "Owl",
	"Libra":       "Swan",
	"Scorpio":     "Scorpion",
	"Sagittarius": "Horse",
	"Capricorn":   "Goat",
	"Aquarius":    "Dolphin",
	"Pisces":      "Fish",
}

// ZodiacSign returns the western zodiac sign for a birthday.
func ZodiacSign(birthday time.Time) string {
	month := birthday.Month()
	day := birthday.Day()

	for _, r := range zodiacRanges {
		if (month == r.startMonth && day >= r.startDay) || (month == r.endMonth && day <= r.endDay) {
			return r.sign
		}
	}

	// Dec 22 – Jan 19.
	return "Capricorn"
}

// HoroscopeAnimal returns the animal associated with a zodiac sign.
func HoroscopeAnimal(sign string) string {
	if animal, ok := horoscopeAnimals[sign]; ok {
		return animal
	}
	return "Unknown"
}
