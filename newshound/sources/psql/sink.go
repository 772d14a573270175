package psql

import (
	"context"

	"newshound/newshound/sources/psql/dao"
	"newshound/newshound/sources/psql/models"
	"newshound/newshound/utils/types"
)

// NewsSink adapts the news DAO to the collector's sink surface so
// accepted records land in Postgres alongside the CSV file.
type NewsSink struct {
	dao   *dao.NewsDAO
	runID string
}

func NewNewsSink(d *dao.NewsDAO, runID string) *NewsSink {
	return &NewsSink{dao: d, runID: runID}
}

func (s *NewsSink) AppendRecord(ctx context.Context, rec types.Record) error {
	return s.dao.CreateRecord(ctx, &models.NewsRecord{
		RunID:       s.runID,
		Title:       rec.Title,
		PublishedAt: rec.PublishedAt,
		Description: rec.Description,
		Picture:     rec.Picture,
		PhraseCount: rec.PhraseCount,
		HasMoney:    rec.HasMoney,
	})
}

func (s *NewsSink) Flush() error {
	return nil
}
