package repository

import (
	"context"
	"trading-journal/internal/model"

	"gorm.io/gorm"
)

// TradeRepository reads the keyed store of imported trades and their
// annotations. The engine treats both as read-only.
type TradeRepository interface {
	GetAllTrades(ctx context.Context) ([]model.TradeRecord, error)
	GetAllAnnotations(ctx context.Context) ([]model.Annotation, error)
	GetTradeByID(ctx context.Context, tradeID string) (*model.TradeRecord, error)
	GetAnnotationByTradeID(ctx context.Context, tradeID string) (*model.Annotation, error)
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) GetAllTrades(ctx context.Context) ([]model.TradeRecord, error) {
	var trades []model.TradeRecord
	if err := r.db.WithContext(ctx).Order("entry_time asc").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) GetAllAnnotations(ctx context.Context) ([]model.Annotation, error) {
	var annotations []model.Annotation
	if err := r.db.WithContext(ctx).Find(&annotations).Error; err != nil {
		return nil, err
	}
	return annotations, nil
}

func (r *tradeRepository) GetTradeByID(ctx context.Context, tradeID string) (*model.TradeRecord, error) {
	var trade model.TradeRecord
	err := r.db.WithContext(ctx).Where("trade_id = ?", tradeID).First(&trade).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) GetAnnotationByTradeID(ctx context.Context, tradeID string) (*model.Annotation, error) {
	var annotation model.Annotation
	err := r.db.WithContext(ctx).Where("trade_id = ?", tradeID).First(&annotation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &annotation, nil
}
