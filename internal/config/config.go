// ABOUTME: Configuration loading for spectra
// ABOUTME: Reads spectra.yaml, applies .env and SPECTRA_* overrides and validates the result
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/harperreed/spectra/pkg/classifier"
	"github.com/harperreed/spectra/pkg/dataset"
	"github.com/harperreed/spectra/pkg/spectrogram"
	"github.com/harperreed/spectra/pkg/storage"
	"github.com/harperreed/spectra/pkg/tensor"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "spectra.yaml"

// Config is the full application configuration
type Config struct {
	Image       tensor.Shape      `yaml:"image"`
	Spectrogram SpectrogramConfig `yaml:"spectrogram"`
	Corpora     []CorpusConfig    `yaml:"corpora"`
	Training    TrainingConfig    `yaml:"training"`
	Model       ModelConfig       `yaml:"model"`
	Cache       CacheConfig       `yaml:"cache"`
	Library     LibraryConfig     `yaml:"library"`
	Log         LogConfig         `yaml:"log"`
}

// SpectrogramConfig holds the transform parameters
type SpectrogramConfig struct {
	NumMels   int     `yaml:"mels"`
	FMin      float64 `yaml:"fmin"`
	FMax      float64 `yaml:"fmax"`
	NFFT      int     `yaml:"n_fft"`
	HopLength int     `yaml:"hop_length"`
	TopDB     float64 `yaml:"top_db"`
	Workers   int     `yaml:"workers"`
}

// CorpusConfig is one labeled spectrogram directory
type CorpusConfig struct {
	Name      string `yaml:"name"`
	Dir       string `yaml:"dir"`
	Label     int    `yaml:"label"`
	Recursive bool   `yaml:"recursive"`
}

// TrainingConfig controls dataset split and fitting
type TrainingConfig struct {
	Epochs          int     `yaml:"epochs"`
	BatchSize       int     `yaml:"batch_size"`
	ValidationSplit float64 `yaml:"validation_split"`
	TestFraction    float64 `yaml:"test_fraction"`
	Seed            uint64  `yaml:"seed"`
	Workers         int     `yaml:"workers"`
}

// ModelConfig describes the network and where its artifact lives
type ModelConfig struct {
	// Path is a local file or s3://bucket/key
	Path    string   `yaml:"path"`
	Filters []int    `yaml:"filters"`
	Kernel  int      `yaml:"kernel"`
	Pool    int      `yaml:"pool"`
	Hidden  int      `yaml:"hidden"`
	Dropout float64  `yaml:"dropout"`
	Output  string   `yaml:"output"`
	S3      S3Config `yaml:"s3"`
}

// S3Config configures s3:// model locations
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// CacheConfig controls the decoded tensor cache
type CacheConfig struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
}

// LibraryConfig points the browser at its track library
type LibraryConfig struct {
	AudioDir       string `yaml:"audio_dir"`
	SpectrogramDir string `yaml:"spectrogram_dir"`
	CoverDir       string `yaml:"cover_dir"`
}

// LogConfig controls the log file
type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	spec := spectrogram.DefaultConfig()
	shape := tensor.Shape{Channels: 3, Height: spec.Height, Width: spec.Width}
	arch := classifier.DefaultArchitecture(shape)

	return &Config{
		Image: shape,
		Spectrogram: SpectrogramConfig{
			NumMels:   spec.NumMels,
			FMin:      spec.FMin,
			FMax:      spec.FMax,
			NFFT:      spec.NFFT,
			HopLength: spec.HopLength,
			TopDB:     spec.TopDB,
			Workers:   1,
		},
		Corpora: []CorpusConfig{
			{Name: "ai", Dir: "spectrograms/ai", Label: dataset.LabelAI},
			{Name: "real", Dir: "spectrograms/real", Label: dataset.LabelReal},
		},
		Training: TrainingConfig{
			Epochs:          10,
			BatchSize:       32,
			ValidationSplit: 0.2,
			TestFraction:    0.2,
			Seed:            42,
		},
		Model: ModelConfig{
			Path:    "models/spectra.msgpack",
			Filters: arch.Filters,
			Kernel:  arch.Kernel,
			Pool:    arch.Pool,
			Hidden:  arch.Hidden,
			Dropout: arch.Dropout,
			Output:  string(arch.Output),
		},
		Cache: CacheConfig{
			Dir:     ".spectra/cache",
			Enabled: true,
		},
		Library: LibraryConfig{
			AudioDir:       "audio",
			SpectrogramDir: "spectrograms/library",
			CoverDir:       "covers",
		},
		Log: LogConfig{
			File: "spectra.log",
		},
	}
}

// Load reads the config file at path over the defaults, then applies .env
// and SPECTRA_* overrides. A missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Model.Path = getEnv("SPECTRA_MODEL", c.Model.Path)
	c.Cache.Dir = getEnv("SPECTRA_CACHE_DIR", c.Cache.Dir)
	c.Library.AudioDir = getEnv("SPECTRA_AUDIO_DIR", c.Library.AudioDir)
	c.Log.File = getEnv("SPECTRA_LOG_FILE", c.Log.File)
	c.Training.Epochs = getEnvInt("SPECTRA_EPOCHS", c.Training.Epochs)
	c.Training.BatchSize = getEnvInt("SPECTRA_BATCH_SIZE", c.Training.BatchSize)
	c.Training.Seed = uint64(getEnvInt("SPECTRA_SEED", int(c.Training.Seed)))
	c.Model.S3.Region = getEnv("SPECTRA_S3_REGION", c.Model.S3.Region)
	c.Model.S3.Endpoint = getEnv("SPECTRA_S3_ENDPOINT", c.Model.S3.Endpoint)
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	var errs []error

	if err := c.Image.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("image: %w", err))
	}
	if err := c.SpectrogramConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("spectrogram: %w", err))
	}
	if err := c.Architecture().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("model: %w", err))
	}

	if len(c.Corpora) == 0 {
		errs = append(errs, errors.New("corpora: at least one corpus is required"))
	}
	for i, corpus := range c.Corpora {
		if corpus.Dir == "" {
			errs = append(errs, fmt.Errorf("corpora[%d]: dir is required", i))
		}
		if corpus.Label != dataset.LabelAI && corpus.Label != dataset.LabelReal {
			errs = append(errs, fmt.Errorf("corpora[%d]: label must be 0 or 1, got %d", i, corpus.Label))
		}
	}

	t := c.Training
	if t.Epochs <= 0 {
		errs = append(errs, fmt.Errorf("training: epochs must be positive, got %d", t.Epochs))
	}
	if t.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("training: batch_size must be positive, got %d", t.BatchSize))
	}
	if t.ValidationSplit < 0 || t.ValidationSplit >= 1 {
		errs = append(errs, fmt.Errorf("training: validation_split must be in [0,1), got %v", t.ValidationSplit))
	}
	if t.TestFraction <= 0 || t.TestFraction >= 1 {
		errs = append(errs, fmt.Errorf("training: test_fraction must be in (0,1), got %v", t.TestFraction))
	}
	if c.Model.Path == "" {
		errs = append(errs, errors.New("model: path is required"))
	}

	return errors.Join(errs...)
}

// SpectrogramConfig returns the generator settings, sized to the image shape
func (c *Config) SpectrogramConfig() spectrogram.Config {
	s := c.Spectrogram
	return spectrogram.Config{
		NumMels:   s.NumMels,
		FMin:      s.FMin,
		FMax:      s.FMax,
		NFFT:      s.NFFT,
		HopLength: s.HopLength,
		TopDB:     s.TopDB,
		Width:     c.Image.Width,
		Height:    c.Image.Height,
	}
}

// Architecture returns the network described by the model section
func (c *Config) Architecture() classifier.Architecture {
	m := c.Model
	return classifier.Architecture{
		Input:   c.Image,
		Filters: m.Filters,
		Kernel:  m.Kernel,
		Pool:    m.Pool,
		Hidden:  m.Hidden,
		Dropout: m.Dropout,
		Output:  classifier.Output(m.Output),
	}
}

// DatasetCorpora returns the corpus list in configured order
func (c *Config) DatasetCorpora() []dataset.Corpus {
	out := make([]dataset.Corpus, len(c.Corpora))
	for i, corpus := range c.Corpora {
		name := corpus.Name
		if name == "" {
			name = corpus.Dir
		}
		out[i] = dataset.Corpus{Name: name, Dir: corpus.Dir, Label: corpus.Label, Recursive: corpus.Recursive}
	}
	return out
}

// FitConfig returns the training loop settings
func (c *Config) FitConfig() classifier.FitConfig {
	return classifier.FitConfig{
		Epochs:          c.Training.Epochs,
		BatchSize:       c.Training.BatchSize,
		ValidationSplit: c.Training.ValidationSplit,
		Seed:            c.Training.Seed,
		Workers:         c.Training.Workers,
	}
}

// S3Options returns the options for s3:// model locations
func (c *Config) S3Options() storage.S3Options {
	return storage.S3Options{
		Region:    c.Model.S3.Region,
		Endpoint:  c.Model.S3.Endpoint,
		PathStyle: c.Model.S3.PathStyle,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}
