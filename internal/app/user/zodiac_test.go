package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestZodiacSign(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		want     string
	}{
		{"aries start", date(1990, time.March, 21), "Aries"},
		{"aries end", date(1990, time.April, 19), "Aries"},
		{"taurus start", date(1990, time.April, 20), "Taurus"},
		{"gemini mid", date(1990, time.June, 1), "Gemini"},
		{"cancer end", date(1990, time.July, 22), "Cancer"},
		{"leo start", date(1990, time.July, 23), "Leo"},
		{"virgo mid", date(1990, time.September, 10), "Virgo"},
		{"libra start", date(1990, time.September, 23), "Libra"},
		{"scorpio end", date(1990, time.November, 21), "Scorpio"},
		{"sagittarius start", date(1990, time.November, 22), "Sagittarius"},
		{"sagittarius end", date(1990, time.December, 21), "Sagittarius"},
		{"capricorn year end", date(1990, time.December, 22), "Capricorn"},
		{"capricorn new year", date(1991, time.January, 1), "Capricorn"},
		{"capricorn end", date(1991, time.January, 19), "Capricorn"},
		{"aquarius start", date(1991, time.January, 20), "Aquarius"},
		{"aquarius end", date(1991, time.February, 18), "Aquarius"},
		{"pisces start", date(1991, time.February, 19), "Pisces"},
		{"pisces end", date(1991, time.March, 20), "Pisces"},
		{"leap day", date(2000, time.February, 29), "Pisces"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ZodiacSign(tc.birthday))
		})
	}
}

func TestHoroscopeAnimal(t *testing.T) {
	req := require.New(t)

	req.Equal("Ram", HoroscopeAnimal("Aries"))
	req.Equal("Goat", HoroscopeAnimal("Capricorn"))
	req.Equal("Fish", HoroscopeAnimal("Pisces"))
	req.Equal("Unknown", HoroscopeAnimal("Ophiuchus"))
}
