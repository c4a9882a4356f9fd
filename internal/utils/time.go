package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeStringToMinutes parses "HH:MM" or "HH:MM:SS" into minutes since
// midnight. Seconds are ignored; missing parts count as zero.
func TimeStringToMinutes(value string) int {
	parts := strings.Split(value, ":")
	hours := 0
	minutes := 0
	if len(parts) > 0 {
		hours, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(parts[1])
	}
	return hours*60 + minutes
}

// FormatToTwoDecimals rounds to two decimal places.
func FormatToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatDecimalHoursToTime converts decimal hours to "H:MM", e.g. 2.5 -> "2:30".
func FormatDecimalHoursToTime(decimalHours float64) string {
	if decimalHours <= 0 {
		return "00:00"
	}
	totalMinutes := int(math.Round(decimalHours * 60))
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// ShiftDuration returns the duration between two wall-clock times as both a
// display string and a two-decimal hour value. Non-positive spans yield zero.
func ShiftDuration(startTime, endTime string) (display string, decimal float64) {
	totalMinutes := TimeStringToMinutes(endTime) - TimeStringToMinutes(startTime)
	if totalMinutes <= 0 {
		return "00:00", 0
	}
	decimal = FormatToTwoDecimals(float64(totalMinutes) / 60)
	return FormatDecimalHoursToTime(decimal), decimal
}

// MinutesToTimeString formats minutes since midnight as "HH:MM:SS".
func MinutesToTimeString(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// FormatClock trims a "HH:MM:SS" time down to "HH:MM" for display.
func FormatClock(value string) string {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return value
	}
	return parts[0] + ":" + parts[1]
}
