package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Training TrainingConfig `mapstructure:"training"`
}

type TrainingConfig struct {
	// Seed drives the train/test split, fold assignment and the forest RNG.
	Seed int64 `mapstructure:"seed"`
	// TestSize is the held-out fraction of the dataset.
	TestSize float64 `mapstructure:"test_size"`
	// CVFolds is the number of cross-validation folds in the grid search.
	CVFolds int `mapstructure:"cv_folds"`
	// Workers bounds the grid-search worker pool; 0 means one per core.
	Workers int `mapstructure:"workers"`
	// EnsembleSizes is the forest-size axis of the hyperparameter grid.
	EnsembleSizes []int `mapstructure:"ensemble_sizes"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("training.seed", 85055)
	v.SetDefault("training.test_size", 0.2)
	v.SetDefault("training.cv_folds", 5)
	v.SetDefault("training.workers", 0)
	v.SetDefault("training.ensemble_sizes", []int{10, 100})

	// Enable environment variable support
	v.AutomaticEnv()

	// The config file is optional; defaults cover every knob.
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Training.TestSize <= 0 || config.Training.TestSize >= 1 {
		return nil, fmt.Errorf("test_size must be in (0, 1), got %v", config.Training.TestSize)
	}
	if config.Training.CVFolds < 2 {
		return nil, fmt.Errorf("cv_folds must be at least 2, got %d", config.Training.CVFolds)
	}
	if len(config.Training.EnsembleSizes) == 0 {
		return nil, fmt.Errorf("ensemble_sizes must not be empty")
	}

	return &config, nil
}
