package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"trading-journal/internal/dto"
	"trading-journal/internal/repository"
	"trading-journal/internal/service"

	"github.com/spf13/cobra"
)

var (
	backtestWithSim bool
	backtestRules   []string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a one-shot backtest over the stored trade history and print the report as JSON",
	Run:   RunBacktest,
}

func init() {
	backtestCmd.Flags().BoolVar(&backtestWithSim, "with-simulation", false, "substitute simulated alternate entries for rules that define one")
	backtestCmd.Flags().StringSliceVar(&backtestRules, "rules", nil, "restrict the report to these rule keys")
}

func RunBacktest(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo)

	result, err := services.BacktestService.RunBacktest(ctx, dto.BacktestRequest{
		WithSimulation: backtestWithSim,
		Rules:          backtestRules,
	})
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode backtest result: %v", err)
	}
}
