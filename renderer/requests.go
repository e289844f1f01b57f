package renderer

import (
	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
)

type requestRow struct {
	Date, Party, Message, Status, Amount string
}

type requestsView struct {
	Pending            int
	Incoming, Outgoing []requestRow
}

// RenderRequests renders the requests the viewer received and made.
// incoming are named by requester, outgoing by recipient.
func RenderRequests(incoming, outgoing []payview.MoneyRequest, names payview.PartyNamer) string {
	if names == nil {
		names = payview.DefaultPartyName
	}
	row := func(r payview.MoneyRequest, party int64) requestRow {
		return requestRow{
			Date:    date.Of(r.Timestamp).String(),
			Party:   cell(names(party)),
			Message: cell(r.Message),
			Status:  cell(r.Status),
			Amount:  r.Amount.String(),
		}
	}
	var v requestsView
	for _, r := range incoming {
		if r.StatusKind() == payview.RequestPending {
			v.Pending++
		}
		v.Incoming = append(v.Incoming, row(r, r.RequesterID))
	}
	for _, r := range outgoing {
		v.Outgoing = append(v.Outgoing, row(r, r.RecipientID))
	}
	partials := map[string]string{
		"requests_table": "requests_table.md",
	}
	return renderTemplate("requests", "requests.md", partials, v)
}
