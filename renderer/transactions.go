package renderer

import (
	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
)

type transactionRow struct {
	Date, Type, Party, Description, Status, Amount string
}

type pageView struct {
	Rows                              []transactionRow
	First, Last, Total, Number, Pages int
}

// RenderPage renders one page of the transaction history as a markdown table.
// Parties are named by names, payview.DefaultPartyName when nil.
func RenderPage(p payview.Page[payview.ProcessedTransaction], names payview.PartyNamer) string {
	if names == nil {
		names = payview.DefaultPartyName
	}
	v := pageView{
		First:  p.First(),
		Last:   p.Last(),
		Total:  p.TotalCount,
		Number: p.Number,
		Pages:  p.TotalPages,
	}
	for _, tx := range p.Items {
		description := tx.Description
		if description == "" {
			description = "—"
		}
		amount := "+" + tx.Amount.String()
		if tx.Direction == payview.Debit {
			amount = "-" + tx.Amount.String()
		}
		v.Rows = append(v.Rows, transactionRow{
			Date:        date.Of(tx.Timestamp).String(),
			Type:        tx.Direction.String(),
			Party:       cell(names(tx.CounterpartyID)),
			Description: cell(description),
			Status:      cell(tx.Status),
			Amount:      amount,
		})
	}
	partials := map[string]string{
		"page_table": "page_table.md",
	}
	return renderTemplate("page", "page.md", partials, v)
}
