// Package export renders a tournament record as CSV and publishes it to one
// or more sinks.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/swissround/internal/domain/types"
)

var (
	ledgerHeader    = []string{"Round", "Player1", "Player2", "Result"}
	standingsTitle  = "Final Standings"
	standingsHeader = "Rank,Player,Points,Wins,Losses,Ties,OMW"
)

// FileName returns the object name used for a tournament export.
func FileName(id string) string {
	return "swiss_tournament_" + id + ".csv"
}

// WriteCSV writes the ledger followed by a blank line and the standings
// table. OMW is printed with two decimals.
func WriteCSV(w io.Writer, rec types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, r := range rec.Ledger {
		if err := cw.Write([]string{strconv.Itoa(r.Round), r.Player1, r.Player2, r.Result}); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", standingsTitle, standingsHeader); err != nil {
		return fmt.Errorf("write standings header: %w", err)
	}
	for _, e := range rec.Standings.Entries {
		if _, err := fmt.Fprintf(w, "%d,%s,%d,%d,%d,%d,%.2f\n",
			e.Rank, e.Name, e.Points, e.Wins, e.Losses, e.Ties, e.OMW); err != nil {
			return fmt.Errorf("write standings row: %w", err)
		}
	}
	return nil
}

// Render returns the CSV export of rec.
func Render(rec types.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
