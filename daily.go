package payview

import (
	"time"

	"github.com/etnz/payview/date"
	"gonum.org/v1/gonum/stat"
)

// DailyBucket holds the completed flows of one calendar day.
type DailyBucket struct {
	Day      date.Date
	Sent     Money
	Received Money
}

func (b DailyBucket) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", b.Day)
	w.Append("sent", b.Sent.number())
	w.Append("received", b.Received.number())
	return w.MarshalJSON()
}

// DailySeries returns exactly windowDays buckets, oldest first, the last one
// being the calendar day containing now. Days without activity are zero.
//
// Calendar days are taken in now's location. Only completed transactions are
// counted, with the same sender/recipient attribution as Summarize.
func DailySeries(txs []Transaction, viewer int64, windowDays int, now time.Time) ([]DailyBucket, error) {
	if err := checkViewer(viewer); err != nil {
		return nil, err
	}
	if windowDays < 0 {
		return nil, invalidf("window of %d days", windowDays)
	}
	days := date.LastDays(date.Of(now), windowDays)
	buckets := make([]DailyBucket, 0, windowDays)
	index := make(map[date.Date]int, windowDays)
	for d := range days.Days() {
		index[d] = len(buckets)
		buckets = append(buckets, DailyBucket{Day: d})
	}

	loc := now.Location()
	var cur string // currency of the whole series
	for _, tx := range txs {
		if !tx.Completed() {
			continue
		}
		i, ok := index[date.Of(tx.Timestamp.In(loc))]
		if !ok {
			continue
		}
		if c := tx.Amount.Currency(); cur == "" {
			cur = c
		} else if c != "" && c != cur {
			return nil, invalidf("transaction %d is in %q, other transactions are in %q", tx.ID, c, cur)
		}
		b := &buckets[i]
		if tx.SenderID == viewer {
			b.Sent = b.Sent.Add(tx.Amount)
		}
		if tx.RecipientID == viewer {
			b.Received = b.Received.Add(tx.Amount)
		}
	}
	return buckets, nil
}

// DayCount is the number of completed transactions on a day.
type DayCount struct {
	Day   date.Date `json:"date"`
	Count int       `json:"count"`
}

// ActivityCalendar counts the completed transactions of each of the last
// days days, oldest first, ending on now's calendar day.
func ActivityCalendar(txs []Transaction, days int, now time.Time) ([]DayCount, error) {
	if days < 0 {
		return nil, invalidf("calendar of %d days", days)
	}
	r := date.LastDays(date.Of(now), days)
	counts := make(map[date.Date]int)
	loc := now.Location()
	for _, tx := range txs {
		if tx.Completed() {
			counts[date.Of(tx.Timestamp.In(loc))]++
		}
	}
	cal := make([]DayCount, 0, days)
	for d := range r.Days() {
		cal = append(cal, DayCount{Day: d, Count: counts[d]})
	}
	return cal, nil
}

// Trend describes a daily series statistically.
//
// Means and standard deviations are floating point approximations meant for
// chart annotations, never for accounting.
type Trend struct {
	Days           int
	MeanSent       float64
	MeanReceived   float64
	StdDevSent     float64
	StdDevReceived float64
	Busiest        date.Date // day with the highest volume, zero if there is no activity
	BusiestVolume  Money
	TotalSent      Money
	TotalReceived  Money
	ActiveDays     int
}

// TrendOf computes the Trend of a daily series.
func TrendOf(buckets []DailyBucket) Trend {
	t := Trend{Days: len(buckets)}
	if len(buckets) == 0 {
		return t
	}
	sent := make([]float64, len(buckets))
	received := make([]float64, len(buckets))
	for i, b := range buckets {
		sent[i], received[i] = b.Sent.AsFloat(), b.Received.AsFloat()
		t.TotalSent = t.TotalSent.Add(b.Sent)
		t.TotalReceived = t.TotalReceived.Add(b.Received)
		volume := b.Sent.Add(b.Received)
		if !volume.IsZero() {
			t.ActiveDays++
		}
		if volume.GreaterThan(t.BusiestVolume) {
			t.Busiest, t.BusiestVolume = b.Day, volume
		}
	}
	if len(buckets) > 1 {
		t.MeanSent, t.StdDevSent = stat.MeanStdDev(sent, nil)
		t.MeanReceived, t.StdDevReceived = stat.MeanStdDev(received, nil)
	} else {
		t.MeanSent, t.MeanReceived = sent[0], received[0]
	}
	return t
}

func (t Trend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("days", t.Days)
	w.Append("activeDays", t.ActiveDays)
	w.Append("meanSent", t.MeanSent)
	w.Append("meanReceived", t.MeanReceived)
	w.Append("stdDevSent", t.StdDevSent)
	w.Append("stdDevReceived", t.StdDevReceived)
	if !t.Busiest.IsZero() {
		w.Append("busiest", t.Busiest)
		w.Append("busiestVolume", t.BusiestVolume.number())
	}
	w.Append("totalSent", t.TotalSent.number())
	w.Append("totalReceived", t.TotalReceived.number())
	return w.MarshalJSON()
}
