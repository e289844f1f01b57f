package renderer

import (
	"fmt"

	"github.com/etnz/payview"
)

type dailyRow struct {
	Day, Sent, Received string
}

type trendView struct {
	Days, ActiveDays             int
	Busiest, BusiestVolume       string
	TotalSent, TotalReceived     string
	MeanSent, StdDevSent         string
	MeanReceived, StdDevReceived string
}

type dailyView struct {
	Rows  []dailyRow
	Trend trendView
}

// RenderDaily renders the daily series and its trend.
func RenderDaily(buckets []payview.DailyBucket, trend payview.Trend) string {
	var v dailyView
	for _, b := range buckets {
		v.Rows = append(v.Rows, dailyRow{Day: b.Day.String(), Sent: b.Sent.String(), Received: b.Received.String()})
	}
	v.Trend = trendView{
		Days:           trend.Days,
		ActiveDays:     trend.ActiveDays,
		Busiest:        trend.Busiest.String(),
		BusiestVolume:  trend.BusiestVolume.String(),
		TotalSent:      trend.TotalSent.String(),
		TotalReceived:  trend.TotalReceived.String(),
		MeanSent:       fmt.Sprintf("%.2f", trend.MeanSent),
		StdDevSent:     fmt.Sprintf("%.2f", trend.StdDevSent),
		MeanReceived:   fmt.Sprintf("%.2f", trend.MeanReceived),
		StdDevReceived: fmt.Sprintf("%.2f", trend.StdDevReceived),
	}
	partials := map[string]string{
		"daily_trend": "daily_trend.md",
	}
	return renderTemplate("daily", "daily.md", partials, v)
}
