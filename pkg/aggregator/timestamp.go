package aggregator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order when a date is parsed for its weekday.
var DefaultDateLayouts = []string{"1/2/2006", "1/2/06"}

// ErrUnparseableTimestamp is matched by errors from ParseHour and ParseWeekday.
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// TimestampError reports a date or time that does not fit the expected format.
type TimestampError struct {
	Value  string
	Reason string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("unparseable timestamp %q: %s", e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrUnparseableTimestamp) true for any TimestampError.
func (e *TimestampError) Is(target error) bool {
	return target == ErrUnparseableTimestamp
}

// ParseHour converts an authored time such as "2:30 PM" or "14:30:15" to an
// hour of day. A PM marker adds 12 unless the hour is 12; an AM marker maps
// 12 to 0.
func ParseHour(clock string) (int, error) {
	hourPart, _, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, &TimestampError{Value: clock, Reason: "missing ':'"}
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, &TimestampError{Value: clock, Reason: "hour is not a number"}
	}

	switch {
	case strings.Contains(clock, "PM") && hour != 12:
		hour += 12
	case strings.Contains(clock, "AM") && hour == 12:
		hour = 0
	}

	if hour < 0 || hour > 23 {
		return 0, &TimestampError{Value: clock, Reason: "hour out of range"}
	}
	return hour, nil
}

// ParseWeekday parses date with the first matching layout and returns its weekday.
func ParseWeekday(date string, layouts []string) (time.Weekday, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, date)
		if err == nil {
			return t.Weekday(), nil
		}
	}
	return 0, &TimestampError{Value: date, Reason: fmt.Sprintf("no layout matched %v", layouts)}
}
