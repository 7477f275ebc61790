package domain

import (
	"fmt"
	"strings"
	"time"
)

// weekdayNames maps lowercase English and French weekday spellings to the
// canonical time.Weekday. The admin UI historically stored either language,
// so both must keep parsing.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"lundi":     time.Monday,
	"tuesday":   time.Tuesday,
	"mardi":     time.Tuesday,
	"wednesday": time.Wednesday,
	"mercredi":  time.Wednesday,
	"thursday":  time.Thursday,
	"jeudi":     time.Thursday,
	"friday":    time.Friday,
	"vendredi":  time.Friday,
	"saturday":  time.Saturday,
	"samedi":    time.Saturday,
	"sunday":    time.Sunday,
	"dimanche":  time.Sunday,
}

// ParseWeekday normalizes an English or French weekday name to time.Weekday.
// Matching is case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	w, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday name %q", name)
	}
	return w, nil
}

// ParseWeekdays parses a comma-separated weekday list ("Monday,Mardi").
// Unknown names are collected in rejected instead of failing the whole list.
func ParseWeekdays(csv string) (days []time.Weekday, rejected []string) {
	seen := make(map[time.Weekday]bool)
	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		w, err := ParseWeekday(token)
		if err != nil {
			rejected = append(rejected, token)
			continue
		}
		if !seen[w] {
			seen[w] = true
			days = append(days, w)
		}
	}
	return days, rejected
}
