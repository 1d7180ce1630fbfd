// Command trainer runs the offline pipeline: synthesize arrival/service
// data, compute ground-truth queue metrics with the FIFO simulation, train
// and select a regression model, and persist the model artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/queuesmart/queuesmart/internal/config"
	"github.com/queuesmart/queuesmart/internal/domain/features"
	"github.com/queuesmart/queuesmart/internal/domain/gen"
	"github.com/queuesmart/queuesmart/internal/domain/model"
	"github.com/queuesmart/queuesmart/internal/domain/predict"
	"github.com/queuesmart/queuesmart/internal/domain/simulate"
	"github.com/queuesmart/queuesmart/internal/domain/types"
	"github.com/queuesmart/queuesmart/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("trainer failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := logger.Init(); err != nil {
		return err
	}
	log := logger.Named("trainer")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	days := flag.Int("days", cfg.TrainingDays, "calendar span of generated data (weekends skipped)")
	seed := flag.Int64("seed", cfg.Seed, "RNG seed for the whole pipeline")
	dataDir := flag.String("data", cfg.DataDir, "directory for generated datasets")
	modelPath := flag.String("model", cfg.ModelPath, "output path for the model artifact")
	flag.Parse()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -*days+1)
	branches := types.Branches()

	// Stage 1: synthesize and clean the raw dataset.
	records := gen.BuildServiceRecords(start, end, branches, *seed)
	records, dropped := gen.Clean(records)
	log.Info(ctx, "dataset generated",
		logger.String("start", start.Format("2006-01-02")),
		logger.String("end", end.Format("2006-01-02")),
		logger.Int("records", len(records)),
		logger.Int("dropped", dropped),
	)

	// Stage 2: simulate each branch's queue independently.
	var observations []model.Observation
	_, byBranch := gen.SplitByBranch(records)
	for _, branch := range branches {
		branchRecords := byBranch[branch]
		queueMetrics, err := simulate.Run(branchRecords)
		if err != nil {
			return fmt.Errorf("simulate %s: %w", branch, err)
		}
		observations = append(observations, simulate.Join(branchRecords, queueMetrics)...)
		log.Info(ctx, "branch simulated",
			logger.String("branch", branch),
			logger.Int("customers", len(branchRecords)),
		)
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *dataDir, err)
	}
	datasetPath := filepath.Join(*dataDir, "processed_banking_data.csv")
	if err := gen.WriteObservations(datasetPath, observations); err != nil {
		return err
	}
	log.Info(ctx, "dataset written", logger.String("path", datasetPath))

	// Stage 3: featurize.
	branchEnc := features.FitEncoder(branchValues(observations))
	serviceEnc := features.FitEncoder(serviceValues(observations))
	builder := features.NewBuilder(branchEnc, serviceEnc)

	x := make([][]float64, 0, len(observations))
	y := make([]float64, 0, len(observations))
	for _, o := range observations {
		vector, err := builder.FromObservation(o)
		if err != nil {
			return fmt.Errorf("featurize %s: %w", o.Service.CustomerID, err)
		}
		x = append(x, vector)
		y = append(y, o.Queue.WaitMinutes)
	}

	// Stage 4: train, select, persist.
	artifact, evals, err := predict.Train(x, y, branchEnc, serviceEnc,
		predict.WithTrainSeed(*seed),
		predict.WithTestFraction(cfg.TestFraction),
	)
	if err != nil {
		return err
	}
	for _, ev := range evals {
		log.Info(ctx, "model evaluated",
			logger.String("model", ev.Model),
			logger.Float64("rmse", ev.RMSE),
			logger.Float64("mae", ev.MAE),
			logger.Float64("r2", ev.R2),
		)
	}

	if err := artifact.Save(*modelPath); err != nil {
		return err
	}
	log.Info(ctx, "artifact saved",
		logger.String("path", *modelPath),
		logger.String("model", artifact.ModelName),
	)
	return nil
}

func branchValues(obs []model.Observation) []string {
	out := make([]string, len(obs))
	for i, o := range obs {
		out[i] = o.Service.Branch
	}
	return out
}

func serviceValues(obs []model.Observation) []string {
	out := make([]string, len(obs))
	for i, o := range obs {
		out[i] = o.Service.ServiceType
	}
	return out
}
