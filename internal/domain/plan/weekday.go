package plan

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the 7 fixed day labels a training plan is keyed by.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the fixed Monday-first sequence.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays[:])
	return out
}

// Today maps the host clock onto the Monday-first sequence. Go's time.Weekday
// starts at Sunday=0, so the index is shifted by 6 mod 7.
func Today(now time.Time) Weekday {
	return weekdays[(int(now.Weekday())+6)%7]
}

// ParseWeekday accepts the canonical labels case-insensitively.
func ParseWeekday(raw string) (Weekday, error) {
	for _, wd := range weekdays {
		if strings.EqualFold(raw, string(wd)) {
			return wd, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

func (w Weekday) String() string { return string(w) }
