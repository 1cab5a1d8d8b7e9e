package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LeaveFullDay          = "full_day"
	LeaveHalfDayMorning   = "half_day_morning"
	LeaveHalfDayAfternoon = "half_day_afternoon"

	// LeaveNone is the "working" sentinel accepted by the self-service save;
	// it is never stored.
	LeaveNone = "none"
)

func ValidLeaveType(leaveType string) bool {
	switch leaveType {
	case LeaveFullDay, LeaveHalfDayMorning, LeaveHalfDayAfternoon:
		return true
	}
	return false
}

const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form. Dates are pinned to
// UTC so that equality filters match the stored column values.
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(date datatypes.Date) string {
	return time.Time(date).Format(DateLayout)
}
