// Package chart draws the daily activity of a user as a PNG image.
package chart

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/etnz/payview"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	sentColor     = drawing.Color{R: 250, G: 134, B: 94, A: 255} // Orange
	receivedColor = drawing.Color{R: 77, G: 184, B: 255, A: 255} // Blue
)

// DailyChart renders the sent and received amounts of buckets as two lines,
// with the busiest day annotated. It needs at least two days.
func DailyChart(w io.Writer, buckets []payview.DailyBucket, title string) error {
	if len(buckets) < 2 {
		return fmt.Errorf("cannot chart %d days: %w", len(buckets), payview.ErrInvalidArgument)
	}

	days := make([]time.Time, len(buckets))
	sent := make([]float64, len(buckets))
	received := make([]float64, len(buckets))
	top := 1.0
	for i, b := range buckets {
		days[i] = b.Day.In(time.UTC)
		sent[i], received[i] = b.Sent.AsFloat(), b.Received.AsFloat()
		top = math.Max(top, math.Max(sent[i], received[i]))
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Sent",
			XValues: days,
			YValues: sent,
			Style:   chart.Style{StrokeColor: sentColor, StrokeWidth: 2},
		},
		chart.TimeSeries{
			Name:    "Received",
			XValues: days,
			YValues: received,
			Style:   chart.Style{StrokeColor: receivedColor, StrokeWidth: 2},
		},
	}
	if trend := payview.TrendOf(buckets); trend.ActiveDays > 0 {
		series = append(series, chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: chart.TimeToFloat64(trend.Busiest.In(time.UTC)),
				YValue: math.Max(trend.BusiestVolume.AsFloat(), 0),
				Label:  "busiest " + trend.BusiestVolume.String(),
			}},
		})
	}

	graph := chart.Chart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 02"),
		},
		YAxis: chart.YAxis{
			// busiest volume sums both lines.
			Range: &chart.ContinuousRange{Min: 0, Max: top * 2.1},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("cannot render chart: %w", err)
	}
	return nil
}
