package payview

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/payview/date"
)

// CSVHeader is the header of the transaction export.
var CSVHeader = []string{"ID", "Type", "Amount", "Party", "Description", "Status", "Date"}

// PartyNamer returns a display name for a user id.
type PartyNamer func(id int64) string

// DefaultPartyName names a user by id, used when no directory is available.
func DefaultPartyName(id int64) string { return fmt.Sprintf("User #%d", id) }

// ExportCSV writes processed transactions as CSV, in the given order.
//
// The party is the counterparty named by names (DefaultPartyName when nil),
// an empty description is written as "—" and the date is the calendar day of
// the timestamp in its own location.
func ExportCSV(w io.Writer, txs []ProcessedTransaction, names PartyNamer) error {
	if names == nil {
		names = DefaultPartyName
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		description := tx.Description
		if description == "" {
			description = "—"
		}
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Direction.String(),
			tx.Amount.Fixed(),
			names(tx.CounterpartyID),
			description,
			tx.Status,
			date.Of(tx.Timestamp).String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot export transaction %d: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
