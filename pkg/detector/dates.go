package detector

import (
	"strconv"
	"strings"
)

// DateOrder describes how the leading date fields are ordered.
type DateOrder string

const (
	DateOrderMonthFirst DateOrder = "month-first"
	DateOrderDayFirst   DateOrder = "day-first"
	DateOrderAmbiguous  DateOrder = "ambiguous"
	DateOrderUnknown    DateOrder = "unknown"
)

// dateShape accumulates what the sampled dates allow.
type dateShape struct {
	seen       int
	monthFirst bool
	dayFirst   bool
	longYear   bool
	shortYear  bool
	invalid    bool
}

func newDateShape() *dateShape {
	return &dateShape{monthFirst: true, dayFirst: true}
}

// add narrows the possible orderings using one "a/b/year" date.
func (s *dateShape) add(date string) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		s.invalid = true
		return
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil || a < 1 || b < 1 {
		s.invalid = true
		return
	}

	s.seen++
	if a > 12 || b > 31 {
		s.monthFirst = false
	}
	if b > 12 || a > 31 {
		s.dayFirst = false
	}

	switch len(parts[2]) {
	case 4:
		s.longYear = true
	case 2:
		s.shortYear = true
	default:
		s.invalid = true
	}
}

func (s *dateShape) order() DateOrder {
	switch {
	case s.seen == 0:
		return DateOrderUnknown
	case s.monthFirst && s.dayFirst:
		return DateOrderAmbiguous
	case s.monthFirst:
		return DateOrderMonthFirst
	case s.dayFirst:
		return DateOrderDayFirst
	default:
		return DateOrderUnknown
	}
}

// layouts returns Go time layouts matching the sampled dates. Ambiguous
// samples fall back to month-first.
func (s *dateShape) layouts() []string {
	var prefix string
	switch s.order() {
	case DateOrderMonthFirst, DateOrderAmbiguous:
		prefix = "1/2/"
	case DateOrderDayFirst:
		prefix = "2/1/"
	default:
		return nil
	}

	var layouts []string
	if s.longYear || !s.shortYear {
		layouts = append(layouts, prefix+"2006")
	}
	if s.shortYear || !s.longYear {
		layouts = append(layouts, prefix+"06")
	}
	return layouts
}
