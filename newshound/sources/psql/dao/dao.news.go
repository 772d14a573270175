// newshound/sources/psql/dao/dao.news.go
package dao

import (
	"context"

	"newshound/newshound/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsDAO struct {
	DB *gorm.DB
}

func NewNewsDAO(db *gorm.DB) *NewsDAO {
	return &NewsDAO{DB: db}
}

func (dao *NewsDAO) CreateRecord(ctx context.Context, rec *models.NewsRecord) error {
	return dao.DB.WithContext(ctx).Create(rec).Error
}

func (dao *NewsDAO) GetRecordByID(ctx context.Context, id uuid.UUID) (*models.NewsRecord, error) {
	var rec models.NewsRecord
	err := dao.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRecordsByRun returns a run's accepted records in acceptance order.
func (dao *NewsDAO) GetRecordsByRun(ctx context.Context, runID string) ([]models.NewsRecord, error) {
	var recs []models.NewsRecord
	err := dao.DB.WithContext(ctx).Where("run_id = ?", runID).Order("created_at asc").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (dao *NewsDAO) CountByRun(ctx context.Context, runID string) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).Model(&models.NewsRecord{}).Where("run_id = ?", runID).Count(&n).Error
	return n, err
}
