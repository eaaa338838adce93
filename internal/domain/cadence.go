package domain

import (
	"fmt"
	"math"
)

// CadenceBand is a qualitative focus-session classification.
type CadenceBand string

const (
	CadenceNone     CadenceBand = ""
	CadenceLong     CadenceBand = "long_focus"
	CadenceStrong   CadenceBand = "strong_focus"
	CadenceFrequent CadenceBand = "frequent_shifts"
	CadenceMicro    CadenceBand = "micro_tasking"
)

// Break-interval bounds in minutes.
const (
	minBreakEvery       = 45
	maxBreakEvery       = 90
	microDisplayMinimum = 20
)

// CadenceAdvice recommends a break rhythm from the day's focus sessions.
// Fields are ordered to minimize memory padding.
type CadenceAdvice struct {
	Band             CadenceBand `json:"band" yaml:"band"`
	Message          string      `json:"message" yaml:"message"`
	AverageSession   float64     `json:"average_session_minutes" yaml:"average_session_minutes"`
	Sessions         int         `json:"sessions" yaml:"sessions"`
	WorkMinutes      int         `json:"work_minutes" yaml:"work_minutes"`
	BreakMinutes     int         `json:"break_minutes" yaml:"break_minutes"`
	RecommendedEvery int         `json:"recommended_every" yaml:"recommended_every"`
	BreakShare       int         `json:"break_share" yaml:"break_share"`
	WorkShare        int         `json:"work_share" yaml:"work_share"`
}

// AdviseCadence derives focus-session statistics and a break recommendation.
// A session is a non-break task with a positive duration.
func AdviseCadence(tasks []*Task, categories []Category) CadenceAdvice {
	var a CadenceAdvice
	breakIDs := breakCategoryIDs(categories)

	for _, t := range tasks {
		if t == nil {
			continue
		}
		d := TaskDuration(t)
		if d <= 0 {
			continue
		}
		if isBreakTask(t, breakIDs) {
			a.BreakMinutes += d
			continue
		}
		a.WorkMinutes += d
		a.Sessions++
	}

	if a.Sessions > 0 {
		a.AverageSession = float64(a.WorkMinutes) / float64(a.Sessions)
	}

	every := a.AverageSession
	if every == 0 {
		every = minBreakEvery
	}
	a.RecommendedEvery = int(math.Round(math.Max(minBreakEvery, math.Min(maxBreakEvery, every))))

	if a.WorkMinutes > 0 {
		a.Band, a.Message = cadenceBand(a.AverageSession, a.RecommendedEvery)
	}

	if tracked := a.WorkMinutes + a.BreakMinutes; tracked > 0 {
		a.BreakShare = int(math.Round(float64(a.BreakMinutes) / float64(tracked) * 100))
		a.WorkShare = 100 - a.BreakShare
	}
	return a
}

// cadenceBand maps an average session length to a band and message.
func cadenceBand(avg float64, every int) (CadenceBand, string) {
	switch {
	case avg >= 90:
		return CadenceLong, fmt.Sprintf(
			"Long focus streaks (avg %s). Step away every %d minutes to recharge.",
			FormatMinutes(int(math.Round(avg))), every)
	case avg >= 60:
		return CadenceStrong, fmt.Sprintf(
			"Strong focus cadence (avg %s). Keep a short break every %d minutes.",
			FormatMinutes(int(math.Round(avg))), every)
	case avg >= 35:
		return CadenceFrequent, fmt.Sprintf(
			"Frequent context shifts (avg %s). Batch related work and pause every %d minutes.",
			FormatMinutes(int(math.Round(avg))), every)
	default:
		shown := max(int(math.Round(avg)), microDisplayMinimum)
		return CadenceMicro, fmt.Sprintf(
			"Micro tasking detected (avg under %s). Group small tasks into blocks of %d minutes.",
			FormatMinutes(shown), every)
	}
}
