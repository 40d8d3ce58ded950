package service

import (
	"context"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/engine"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
)

// AdvisorService runs one live setup through the decision gate.
type AdvisorService interface {
	EvaluateSetup(ctx context.Context, req dto.EvaluateRequest) (*dto.SetupEvaluation, error)
	EvaluateTrade(ctx context.Context, tradeID string) (*dto.SetupEvaluation, error)
}

type advisorService struct {
	cfg       *config.Config
	log       *logger.Logger
	advisor   *engine.Advisor
	tradeRepo repository.TradeRepository
}

// ruleStatsAdapter exposes the persisted rule stats to the engine. Lookup
// failures degrade to "no stats" so an unavailable store never blocks an
// evaluation.
type ruleStatsAdapter struct {
	log  *logger.Logger
	repo repository.RuleStatsRepository
}

func (a *ruleStatsAdapter) StatsFor(ctx context.Context, ruleKey string) (*dto.RuleReport, bool) {
	report, err := a.repo.Get(ctx, ruleKey)
	if err != nil {
		a.log.WarnContext(ctx, "Failed to load rule stats",
			logger.StringField("rule", ruleKey),
			logger.ErrorField(err))
		return nil, false
	}
	if report == nil {
		return nil, false
	}
	return report, true
}

func NewAdvisorService(
	cfg *config.Config,
	log *logger.Logger,
	registry *engine.Registry,
	tradeRepo repository.TradeRepository,
	ruleStatsRepo repository.RuleStatsRepository,
) AdvisorService {
	stats := &ruleStatsAdapter{log: log, repo: ruleStatsRepo}
	return &advisorService{
		cfg:       cfg,
		log:       log,
		advisor:   engine.NewAdvisor(log, registry, stats),
		tradeRepo: tradeRepo,
	}
}

func (s *advisorService) EvaluateSetup(ctx context.Context, req dto.EvaluateRequest) (*dto.SetupEvaluation, error) {
	params := s.resolveParams(req)
	eval := s.advisor.EvaluateSetup(ctx, &req.Row, params)
	return eval, nil
}

// EvaluateTrade evaluates a stored trade by identifier, with the configured
// advisor defaults.
func (s *advisorService) EvaluateTrade(ctx context.Context, tradeID string) (*dto.SetupEvaluation, error) {
	trade, err := s.tradeRepo.GetTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, nil
	}

	annotation, err := s.tradeRepo.GetAnnotationByTradeID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	var annotations []model.Annotation
	if annotation != nil {
		annotations = []model.Annotation{*annotation}
	}

	rows := engine.MergeRows([]model.TradeRecord{*trade}, annotations)
	eval := s.advisor.EvaluateSetup(ctx, &rows[0], s.resolveParams(dto.EvaluateRequest{}))
	return eval, nil
}

func (s *advisorService) resolveParams(req dto.EvaluateRequest) engine.AdvisorParams {
	params := engine.AdvisorParams{
		RemainingDrawdown: s.cfg.Advisor.RemainingDrawdown,
		RiskCapPct:        s.cfg.Advisor.RiskCapPct,
		RequireGrade:      dto.Grade(s.cfg.Advisor.RequireGrade),
		RequireMicro:      s.cfg.Advisor.RequireMicro,
	}
	if req.RemainingDrawdown != nil {
		params.RemainingDrawdown = *req.RemainingDrawdown
	}
	if req.RiskCapPct != nil {
		params.RiskCapPct = *req.RiskCapPct
	}
	if req.RequireGrade != nil {
		params.RequireGrade = dto.Grade(*req.RequireGrade)
	}
	if req.RequireMicro != nil {
		params.RequireMicro = *req.RequireMicro
	}
	return params
}
