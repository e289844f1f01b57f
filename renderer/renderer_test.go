package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is a rendered markdown report parsed back.
type document struct {
	src      []byte
	headings []string
	tables   [][]int // number of cells of each body row, per table
}

func parse(t *testing.T, md string) document {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	doc := document{src: src}
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			doc.headings = append(doc.headings, textOf(n, src))
			return ast.WalkSkipChildren, nil
		case east.KindTable:
			var rows []int
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == east.KindTableRow {
					rows = append(rows, c.ChildCount())
				}
			}
			doc.tables = append(doc.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return doc
}

// textOf concatenates the text segments below n.
func textOf(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func xyz(v float64) payview.Money { return payview.M(v, "XYZ") }

// TestTemplates checks that every template is either a report or a partial of one.
func TestTemplates(t *testing.T) {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	reports := map[string]bool{"summary": true, "page": true, "daily": true, "requests": true}
	for _, e := range entries {
		base := strings.TrimSuffix(e.Name(), ".md")
		if reports[base] {
			continue
		}
		report, _, _ := strings.Cut(base, "_")
		if !reports[report] {
			t.Errorf("template %q does not belong to any report", e.Name())
		}
	}
}

func TestRenderSummary(t *testing.T) {
	s := payview.Summary{
		Inflow:    xyz(40),
		Outflow:   xyz(100),
		NetFlow:   xyz(-60),
		Volume:    xyz(140),
		Count:     3,
		Completed: 2,
		Pending:   1,
	}
	balance := xyz(1520.75)
	got := RenderSummary(s, SummaryOptions{User: "Asha Rao", Window: date.Week, Balance: &balance, Unread: 2})
	doc := parse(t, got)

	wantHeadings := []string{"Summary of Asha Rao", "Flows", "Statuses"}
	if strings.Join(doc.headings, ",") != strings.Join(wantHeadings, ",") {
		t.Errorf("RenderSummary() headings = %q, want %q", doc.headings, wantHeadings)
	}
	if len(doc.tables) != 2 || len(doc.tables[0]) != 4 || len(doc.tables[1]) != 3 {
		t.Fatalf("RenderSummary() tables = %v, want 4 flows and 3 statuses", doc.tables)
	}
	for _, want := range []string{"Last 7 days, 3 transactions.", "**XYZ 1,520.75**", "2 unread", "| Net flow | -XYZ 60.00 |"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderSummary() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderSummary_Unknown(t *testing.T) {
	got := RenderSummary(payview.Summary{Count: 1, Unknown: 1}, SummaryOptions{})
	doc := parse(t, got)
	if doc.headings[0] != "Summary" {
		t.Errorf("RenderSummary() title = %q", doc.headings[0])
	}
	if len(doc.tables) != 2 || len(doc.tables[1]) != 4 {
		t.Errorf("RenderSummary() tables = %v, want an Unknown status row", doc.tables)
	}
	if strings.Contains(got, "balance") {
		t.Errorf("RenderSummary() shows a balance that was not given:\n%s", got)
	}
}

func processed(id, from, to int64, amount float64, description string) payview.ProcessedTransaction {
	tx := payview.Transaction{
		ID:          id,
		SenderID:    from,
		RecipientID: to,
		Amount:      xyz(amount),
		Status:      "COMPLETED",
		Timestamp:   time.Date(2025, time.March, 30, 10, 0, 0, 0, time.UTC),
		Description: description,
	}
	p, err := payview.Classify([]payview.Transaction{tx}, 5)
	if err != nil {
		panic(err)
	}
	return p[0]
}

func TestRenderPage(t *testing.T) {
	items := []payview.ProcessedTransaction{
		processed(1, 5, 7, 100, "rent | march"),
		processed(2, 9, 5, 0.5, ""),
	}
	page, err := payview.Paginate(items, 1, 15)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPage(page, nil)
	doc := parse(t, got)

	if len(doc.tables) != 1 || len(doc.tables[0]) != 2 {
		t.Fatalf("RenderPage() tables = %v, want one table of 2 rows", doc.tables)
	}
	for i, cells := range doc.tables[0] {
		if cells != 6 {
			t.Errorf("RenderPage() row %d has %d cells, want 6", i, cells)
		}
	}
	for _, want := range []string{
		"| 2025-03-30 | DEBIT | User #7 | rent \\| march | COMPLETED | -XYZ 100.00 |",
		"| 2025-03-30 | CREDIT | User #9 | — | COMPLETED | +XYZ 0.50 |",
		"Showing 1 to 2 of 2 transactions, page 1 of 1.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPage() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderPage_Later(t *testing.T) {
	var items []payview.ProcessedTransaction
	for i := range 37 {
		items = append(items, processed(int64(i+1), 5, 7, 1, "coffee"))
	}
	page, err := payview.Paginate(items, 3, 15)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPage(page, func(id int64) string { return "Ravi" })
	if !strings.Contains(got, "Showing 31 to 37 of 37 transactions, page 3 of 3.") {
		t.Errorf("RenderPage() footer is wrong:\n%s", got)
	}
	if doc := parse(t, got); len(doc.tables) != 1 || len(doc.tables[0]) != 7 {
		t.Errorf("RenderPage() tables = %v, want 7 rows", doc.tables)
	}
}

func TestRenderPage_Empty(t *testing.T) {
	page, err := payview.Paginate([]payview.ProcessedTransaction{}, 1, 15)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPage(page, nil)
	if strings.TrimSpace(got) != "No transactions found." {
		t.Errorf("RenderPage(empty) = %q", got)
	}
}

func TestRenderDaily(t *testing.T) {
	day := date.New(2025, time.March, 29)
	buckets := []payview.DailyBucket{
		{Day: day, Sent: xyz(100), Received: xyz(0)},
		{Day: day.Add(1), Sent: xyz(0), Received: xyz(40)},
		{Day: day.Add(2), Sent: xyz(0), Received: xyz(0)},
	}
	got := RenderDaily(buckets, payview.TrendOf(buckets))
	doc := parse(t, got)

	if len(doc.tables) != 1 || len(doc.tables[0]) != 3 {
		t.Fatalf("RenderDaily() tables = %v, want 3 days", doc.tables)
	}
	for _, want := range []string{"## Trend", "Active days: 2 of 3", "Busiest day: 2025-03-29 (XYZ 100.00)"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDaily() does not contain %q:\n%s", want, got)
		}
	}

	quiet := RenderDaily(buckets[2:], payview.TrendOf(buckets[2:]))
	if !strings.Contains(quiet, "No completed transactions over 1 days.") {
		t.Errorf("RenderDaily(quiet) =\n%s", quiet)
	}
}

func TestRenderRequests(t *testing.T) {
	on := time.Date(2025, time.March, 30, 12, 0, 0, 0, time.UTC)
	incoming := []payview.MoneyRequest{
		{ID: 1, RequesterID: 7, RecipientID: 5, Amount: xyz(12), Message: "lunch", Status: "PENDING", Timestamp: on},
		{ID: 2, RequesterID: 9, RecipientID: 5, Amount: xyz(3), Message: "bus", Status: "APPROVED", Timestamp: on},
	}
	got := RenderRequests(incoming, nil, nil)
	doc := parse(t, got)

	wantHeadings := []string{"Money requests", "Incoming (1 pending)", "Outgoing"}
	if strings.Join(doc.headings, ",") != strings.Join(wantHeadings, ",") {
		t.Errorf("RenderRequests() headings = %q, want %q", doc.headings, wantHeadings)
	}
	if len(doc.tables) != 1 || len(doc.tables[0]) != 2 {
		t.Errorf("RenderRequests() tables = %v, want only the incoming table", doc.tables)
	}
	if !strings.Contains(got, "| 2025-03-30 | User #7 | lunch | PENDING | XYZ 12.00 |") || !strings.Contains(got, "No requests.") {
		t.Errorf("RenderRequests() =\n%s", got)
	}
}
