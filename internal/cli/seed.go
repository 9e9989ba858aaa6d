package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-scoring-engine/internal/config"
	"quiz-scoring-engine/internal/infra/postgres"
	"quiz-scoring-engine/internal/logger"
)

// NewSeedCmd stores the demo quizzes in Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo quiz covering every question type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	for _, quiz := range demoQuizzes() {
		if err := postgres.SaveQuiz(ctx, db, quiz); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("quiz seeded", zap.Int64("quiz_id", quiz.ID), zap.String("title", quiz.Title))
	}
	return nil
}
