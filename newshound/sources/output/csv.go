// newshound/sources/output/csv.go
package output

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"newshound/newshound/utils/types"
)

var header = []string{"title", "date", "description", "picture", "count", "money"}

// CSVSink appends accepted records to a tabular file, one row per
// record in acceptance order, header first.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVSink{file: f, writer: w}, nil
}

func (s *CSVSink) AppendRecord(_ context.Context, rec types.Record) error {
	date := ""
	if rec.PublishedAt != nil {
		date = rec.PublishedAt.Format(time.RFC3339)
	}
	return s.writer.Write([]string{
		rec.Title,
		date,
		rec.Description,
		rec.Picture,
		strconv.Itoa(rec.PhraseCount),
		strconv.FormatBool(rec.HasMoney),
	})
}

func (s *CSVSink) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	return s.file.Close()
}
