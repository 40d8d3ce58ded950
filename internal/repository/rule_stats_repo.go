package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RuleStatsRepository persists the per-rule aggregate reports written by the
// scheduled batch run and read back by the decision gate.
type RuleStatsRepository interface {
	Get(ctx context.Context, ruleKey string) (*dto.RuleReport, error)
	GetAll(ctx context.Context) (map[string]dto.RuleReport, error)
	Upsert(ctx context.Context, ruleKey string, report dto.RuleReport) error
}

type ruleStatsRepository struct {
	db *gorm.DB
}

func NewRuleStatsRepository(db *gorm.DB) RuleStatsRepository {
	return &ruleStatsRepository{db: db}
}

func (r *ruleStatsRepository) Get(ctx context.Context, ruleKey string) (*dto.RuleReport, error) {
	var stat model.RuleStat
	err := r.db.WithContext(ctx).Where("rule_key = ?", ruleKey).First(&stat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var report dto.RuleReport
	if err := json.Unmarshal(stat.Report, &report); err != nil {
		return nil, fmt.Errorf("failed to decode rule stats for %s: %w", ruleKey, err)
	}
	return &report, nil
}

func (r *ruleStatsRepository) GetAll(ctx context.Context) (map[string]dto.RuleReport, error) {
	var stats []model.RuleStat
	if err := r.db.WithContext(ctx).Find(&stats).Error; err != nil {
		return nil, err
	}

	out := make(map[string]dto.RuleReport, len(stats))
	for _, stat := range stats {
		var report dto.RuleReport
		if err := json.Unmarshal(stat.Report, &report); err != nil {
			return nil, fmt.Errorf("failed to decode rule stats for %s: %w", stat.RuleKey, err)
		}
		out[stat.RuleKey] = report
	}
	return out, nil
}

func (r *ruleStatsRepository) Upsert(ctx context.Context, ruleKey string, report dto.RuleReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode rule stats for %s: %w", ruleKey, err)
	}

	stat := model.RuleStat{
		RuleKey: ruleKey,
		Report:  payload,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rule_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"report", "updated_at"}),
	}).Create(&stat).Error
}
