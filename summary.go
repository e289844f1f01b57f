package payview

// Summary holds the money flows of a set of transactions seen by one user.
//
// Flows only include completed transactions; the counters cover every record.
type Summary struct {
	Inflow  Money // received by the viewer
	Outflow Money // sent by the viewer
	NetFlow Money // Inflow - Outflow
	Volume  Money // Inflow + Outflow

	Count     int
	Completed int
	Pending   int
	Failed    int
	Unknown   int // records whose status is not a known one
}

// Summarize computes the flows of txs as seen by viewer.
//
// A transaction from the viewer to themself counts both as inflow and outflow.
func Summarize(txs []Transaction, viewer int64) (Summary, error) {
	if err := checkViewer(viewer); err != nil {
		return Summary{}, err
	}
	var s Summary
	for _, tx := range txs {
		s.Count++
		switch tx.StatusKind() {
		case StatusPending:
			s.Pending++
		case StatusFailed:
			s.Failed++
		case StatusUnknown:
			s.Unknown++
		case StatusCompleted:
			s.Completed++
			if !compatible(s.Inflow, tx.Amount) || !compatible(s.Outflow, tx.Amount) {
				return Summary{}, invalidf("transaction %d is in %q, other transactions are not", tx.ID, tx.Amount.Currency())
			}
			if tx.RecipientID == viewer {
				s.Inflow = s.Inflow.Add(tx.Amount)
			}
			if tx.SenderID == viewer {
				s.Outflow = s.Outflow.Add(tx.Amount)
			}
		}
	}
	// align the currency of flows that never received a transaction.
	cur := s.Inflow.Add(s.Outflow).Currency()
	s.Inflow.cur, s.Outflow.cur = cur, cur
	s.NetFlow = s.Inflow.Sub(s.Outflow)
	s.Volume = s.Inflow.Add(s.Outflow)
	return s, nil
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("inflow", s.Inflow.number())
	w.Append("outflow", s.Outflow.number())
	w.Append("netFlow", s.NetFlow.number())
	w.Append("volume", s.Volume.number())
	w.Optional("currency", s.Volume.Currency())
	w.Append("count", s.Count)
	w.Append("completed", s.Completed)
	w.Append("pending", s.Pending)
	w.Append("failed", s.Failed)
	w.Append("unknown", s.Unknown)
	return w.MarshalJSON()
}
