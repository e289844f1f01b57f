package payview

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExportCSV(t *testing.T) {
	txs := []Transaction{
		newTx(1, 5, 7, "100", "COMPLETED", time.Date(2025, time.March, 29, 15, 0, 0, 0, time.UTC)),
		newTx(2, 9, 5, "0.5", "PENDING", time.Date(2025, time.March, 30, 9, 0, 0, 0, time.UTC)),
	}
	txs[0].Description = "rent, march"
	processed, err := Classify(txs, viewer)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := ExportCSV(&sb, processed, nil); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	want := `ID,Type,Amount,Party,Description,Status,Date
1,DEBIT,100.00,User #7,"rent, march",COMPLETED,2025-03-29
2,CREDIT,0.50,User #9,—,PENDING,2025-03-30
`
	if got := sb.String(); got != want {
		t.Errorf("ExportCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestExportCSV_Names(t *testing.T) {
	processed, err := Classify(fixture()[:1], viewer)
	if err != nil {
		t.Fatal(err)
	}
	names := func(id int64) string { return fmt.Sprintf("friend-%d", id) }
	var sb strings.Builder
	if err := ExportCSV(&sb, processed, names); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), ",friend-7,") {
		t.Errorf("ExportCSV() did not use the party names:\n%s", sb.String())
	}
}

func TestExportCSV_Empty(t *testing.T) {
	var sb strings.Builder
	if err := ExportCSV(&sb, nil, nil); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != strings.Join(CSVHeader, ",")+"\n" {
		t.Errorf("ExportCSV(nil) = %q", got)
	}
}
