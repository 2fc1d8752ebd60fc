package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/classifier"
	"github.com/crisisml/disaster-response/internal/evaluate"
	"github.com/crisisml/disaster-response/internal/nlp"
	"github.com/crisisml/disaster-response/internal/storage"
	"github.com/crisisml/disaster-response/pkg/config"
)

const usage = `Usage: train <dataset_location> <model_path>

Loads the cleaned dataset from the given location (a sqlite database file
path, or a postgres:// URL), trains the multi-label message classifier with
a hyperparameter grid search, prints the held-out evaluation report and
saves the trained model artifact to the given path.

Example: train DisasterResponse.db classifier.gob`

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	datasetLocation, modelPath := os.Args[1], os.Args[2]

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	// Load configuration; the file is optional and defaults apply.
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Lemma resources load once, before any tokenization work starts.
	if err := nlp.Init(); err != nil {
		logger.Fatal("Failed to initialize tokenizer resources", zap.Error(err))
	}

	logger.Info("Loading data", zap.String("dataset", datasetLocation))
	store, err := storage.Open(datasetLocation, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset storage", zap.Error(err))
	}
	defer store.Close()

	rows, categories, err := store.LoadDataset()
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	texts := make([]string, len(rows))
	labels := make([][]int, len(rows))
	for i, r := range rows {
		texts[i] = r.Message
		labels[i] = r.Labels
	}
	logger.Info("Loaded dataset", zap.Int("rows", len(rows)), zap.Int("categories", len(categories)))

	trainX, trainY, testX, testY, err := classifier.SplitTrainTest(texts, labels, cfg.Training.TestSize, cfg.Training.Seed)
	if err != nil {
		logger.Fatal("Failed to split dataset", zap.Error(err))
	}

	logger.Info("Training model",
		zap.Int("train_rows", len(trainX)),
		zap.Int("test_rows", len(testX)),
		zap.Int("cv_folds", cfg.Training.CVFolds))
	model, err := classifier.Train(trainX, trainY, categories, cfg.Training, logger)
	if err != nil {
		logger.Fatal("Failed to train model", zap.Error(err))
	}

	logger.Info("Evaluating model")
	report, err := evaluate.Evaluate(model, testX, testY, categories)
	if err != nil {
		logger.Fatal("Failed to evaluate model", zap.Error(err))
	}
	fmt.Println(report)

	logger.Info("Saving model", zap.String("model", modelPath))
	if err := model.Save(modelPath); err != nil {
		logger.Fatal("Failed to save model", zap.Error(err))
	}

	if _, err := classifier.Load(modelPath); err != nil {
		logger.Fatal("Saved model failed to load back", zap.Error(err))
	}
	logger.Info("Trained model saved")
}
