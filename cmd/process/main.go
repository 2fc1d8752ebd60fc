package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/dataset"
	"github.com/crisisml/disaster-response/internal/storage"
)

const usage = `Usage: process <messages_csv> <categories_csv> <dataset_location>

Merges the raw messages and categories files into the cleaned labeled
dataset and stores it as the messages_categories relation at the given
location (a sqlite database file path, or a postgres:// URL).

Example: process disaster_messages.csv disaster_categories.csv DisasterResponse.db`

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	messagesPath, categoriesPath, datasetLocation := os.Args[1], os.Args[2], os.Args[3]

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	logger.Info("Loading data",
		zap.String("messages", messagesPath),
		zap.String("categories", categoriesPath))
	messages, err := dataset.LoadMessages(messagesPath)
	if err != nil {
		logger.Fatal("Failed to load messages", zap.Error(err))
	}
	categories, err := dataset.LoadCategoryRecords(categoriesPath)
	if err != nil {
		logger.Fatal("Failed to load categories", zap.Error(err))
	}

	logger.Info("Cleaning data")
	res, err := dataset.Clean(messages, categories)
	if err != nil {
		logger.Fatal("Failed to clean data", zap.Error(err))
	}
	logger.Info("Cleaned data",
		zap.Int("rows", len(res.Rows)),
		zap.Int("messages_in", res.Stats.MessagesIn),
		zap.Int("categories_in", res.Stats.CategoriesIn),
		zap.Int("unmatched_messages", res.Stats.UnmatchedMessages),
		zap.Int("unmatched_categories", res.Stats.UnmatchedCategories),
		zap.Int("duplicates_removed", res.Stats.DuplicatesRemoved),
		zap.Int("related_remapped", res.Stats.RelatedRemapped))

	// The store is opened only after cleaning succeeds, so a data error
	// never touches an existing dataset.
	logger.Info("Saving data", zap.String("dataset", datasetLocation))
	store, err := storage.Open(datasetLocation, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset storage", zap.Error(err))
	}
	defer store.Close()

	if err := store.SaveDataset(res.Rows, res.Categories); err != nil {
		logger.Fatal("Failed to save dataset", zap.Error(err))
	}
	logger.Info("Cleaned data saved to database")
}
