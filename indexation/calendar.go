package indexation

import "time"

// Calendar answers whether a given day is a recognized holiday. It mirrors
// the feed client's role for the fine calculator: an authoritative external
// fact, injected so tests can pin it.
type Calendar interface {
	IsHoliday(date time.Time) bool
}

// NationalCalendar implements the Brazilian federal holiday calendar: the
// fixed national holidays plus Good Friday, derived from the Easter date.
// Carnival and Corpus Christi are ponto facultativo, not national holidays,
// and are excluded on purpose.
type NationalCalendar struct{}

func (NationalCalendar) IsHoliday(date time.Time) bool {
	m, d := date.Month(), date.Day()
	switch {
	case m == time.January && d == 1: // Confraternização Universal
		return true
	case m == time.April && d == 21: // Tiradentes
		return true
	case m == time.May && d == 1: // Dia do Trabalho
		return true
	case m == time.September && d == 7: // Independência
		return true
	case m == time.October && d == 12: // Nossa Senhora Aparecida
		return true
	case m == time.November && d == 2: // Finados
		return true
	case m == time.November && d == 15: // Proclamação da República
		return true
	case m == time.November && d == 20 && date.Year() >= 2024: // Consciência Negra (Lei 14.759/2023)
		return true
	case m == time.December && d == 25: // Natal
		return true
	}
	goodFriday := easterSunday(date.Year()).AddDate(0, 0, -2)
	return SameDay(date, goodFriday)
}

// easterSunday computes the Gregorian Easter date (anonymous Gauss/Butcher
// algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Day(year, time.Month(month), day)
}

// IsWorkingDay reports whether date is neither a weekend day nor a holiday.
func IsWorkingDay(date time.Time, cal Calendar) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return cal == nil || !cal.IsHoliday(date)
}

// NextWorkingDay returns the first working day strictly after date.
func NextWorkingDay(date time.Time, cal Calendar) time.Time {
	next := date.AddDate(0, 0, 1)
	for !IsWorkingDay(next, cal) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// CountWorkingDays counts the working days between start and end, inclusive
// on both ends. Returns 0 when end precedes start.
func CountWorkingDays(start, end time.Time, cal Calendar) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, cal) {
			count++
		}
	}
	return count
}

// DaysBetween returns the whole calendar days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	a = Day(a.Year(), a.Month(), a.Day())
	b = Day(b.Year(), b.Month(), b.Day())
	return int(b.Sub(a).Hours() / 24)
}
