package renderer

import (
	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
)

// SummaryOptions are the optional parts of the summary report.
type SummaryOptions struct {
	User    string         // display name of the viewing user
	Window  date.Window    // window the summary was computed on
	Balance *payview.Money // wallet balance, omitted when nil
	Unread  int            // unread notifications
}

type summaryView struct {
	User                             string
	Period                           string
	Balance                          string
	Unread                           int
	Inflow, Outflow, NetFlow, Volume string
	Count                            int
	Completed, Pending, Failed       int
	Unknown                          int
}

// RenderSummary renders the flow summary as markdown.
func RenderSummary(s payview.Summary, opts SummaryOptions) string {
	v := summaryView{
		User:      cell(opts.User),
		Period:    PeriodLabel(opts.Window),
		Unread:    opts.Unread,
		Inflow:    s.Inflow.String(),
		Outflow:   s.Outflow.String(),
		NetFlow:   s.NetFlow.SignedString(),
		Volume:    s.Volume.String(),
		Count:     s.Count,
		Completed: s.Completed,
		Pending:   s.Pending,
		Failed:    s.Failed,
		Unknown:   s.Unknown,
	}
	if opts.Balance != nil {
		v.Balance = opts.Balance.String()
	}
	partials := map[string]string{
		"summary_title":    "summary_title.md",
		"summary_flows":    "summary_flows.md",
		"summary_statuses": "summary_statuses.md",
	}
	return renderTemplate("summary", "summary.md", partials, v)
}

// PeriodLabel names a window for humans, e.g. "Last 7 days".
func PeriodLabel(w date.Window) string {
	switch w {
	case date.All:
		return "All time"
	case date.Today:
		return "Today"
	case date.Week:
		return "Last 7 days"
	case date.Month:
		return "Last month"
	case date.Quarter, date.ThreeMonths:
		return "Last 3 months"
	case date.Year:
		return "Last year"
	default:
		return w.String()
	}
}
