package convert

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Write renders records as newline-delimited JSON or as key=value text
// blocks separated by blank lines.
func Write(w io.Writer, format string, records []Record) error {
	switch format {
	case "text":
		return writeText(w, records)
	case "json", "":
		stream := json.BorrowStream(w)
		defer json.ReturnStream(stream)
		for _, rec := range records {
			stream.WriteVal(rec)
			stream.WriteRaw("\n")
			if stream.Error != nil {
				return stream.Error
			}
		}
		return stream.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		for _, kv := range rec.Pairs() {
			if _, err := fmt.Fprintf(bw, "%s=%s\n", kv[0], kv[1]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
