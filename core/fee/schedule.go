// Package fee maps a time of day to the congestion fee charged for a crossing.
package fee

import (
	"fmt"
	"time"
)

// Band is a half-open range of minutes of the day [Start, End) charged Amount.
type Band struct {
	Start  int `json:"start" yaml:"start"`
	End    int `json:"end" yaml:"end"`
	Amount int `json:"amount" yaml:"amount"`
}

// halfHours holds the fee of each half hour of the day, index = minute/30.
var halfHours = [48]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 00:00-05:59
	8, 13, // 06
	18, 18, // 07
	13, 8, // 08
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, // 09:00-14:59
	13, 18, // 15
	18, 18, // 16
	13, 13, // 17
	8, 0, // 18
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 19:00-23:59
}

// ForTimeOfDay returns the fee for a crossing at t. Seconds are ignored and
// every hour and minute maps to an amount; uncharged periods return 0.
func ForTimeOfDay(t time.Time) int {
	return halfHours[(t.Hour()*60+t.Minute())/30]
}

// Bands returns the schedule with adjacent half hours of equal amount merged.
func Bands() []Band {
	var out []Band
	for i, amount := range halfHours {
		start := i * 30
		if n := len(out); n > 0 && out[n-1].Amount == amount {
			out[n-1].End = start + 30
			continue
		}
		out = append(out, Band{Start: start, End: start + 30, Amount: amount})
	}
	return out
}

// Clock formats a minute of the day as HH:MM.
func Clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
