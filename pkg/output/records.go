package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// FormatRecords writes records as text lines or a JSON array.
func FormatRecords(w io.Writer, records []parser.Record, format string) error {
	switch format {
	case "text":
		return formatRecordsText(w, records)
	case "json":
		if records == nil {
			records = []parser.Record{}
		}
		encoder := sonic.ConfigStd.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

func formatRecordsText(w io.Writer, records []parser.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if rec.Author != nil {
			fmt.Fprintf(bw, "%s %s | %s | %s\n", rec.Date, rec.Time, *rec.Author, rec.Body)
		} else {
			fmt.Fprintf(bw, "%s %s | - | %s\n", rec.Date, rec.Time, rec.Body)
		}
	}
	return bw.Flush()
}
