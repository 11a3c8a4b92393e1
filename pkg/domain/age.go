package domain

import "time"

// IsOfAge returns true if the person with the given birth date has reached
// majority years at the specified reference time. Uses calendar arithmetic
// (AddDate) for accurate birthday-boundary handling; millisecond division
// drifts on leap years.
func IsOfAge(birthDate, now time.Time, majority int) bool {
	adultAt := birthDate.UTC().AddDate(majority, 0, 0)
	return !now.UTC().Before(adultAt)
}

// Age returns completed calendar years between birthDate and now.
func Age(birthDate, now time.Time) int {
	birthDate, now = birthDate.UTC(), now.UTC()
	years := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
