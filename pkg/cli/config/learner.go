package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/vigil-lab/argus/pkg/usecase"
)

// Learner holds CLI flags for preference learner tuning
type Learner struct {
	configPath string
}

// LearnerFile is the TOML schema of the learner configuration file
type LearnerFile struct {
	Learner LearnerSection `toml:"learner"`
	Decay   DecaySection   `toml:"decay"`
}

// LearnerSection tunes the confidence update rule
type LearnerSection struct {
	LearningRate      float64 `toml:"learning_rate"`
	InitialConfidence float64 `toml:"initial_confidence"`
	ExampleCap        int     `toml:"example_cap"`
}

// DecaySection tunes the background decay worker. An empty scope list
// disables the worker.
type DecaySection struct {
	Interval   string   `toml:"interval"`
	StaleAfter string   `toml:"stale_after"`
	Factor     float64  `toml:"factor"`
	Scopes     []string `toml:"scopes"`
}

// DecayConfig is the parsed decay worker configuration
type DecayConfig struct {
	Interval   time.Duration
	StaleAfter time.Duration
	Factor     float64
	Scopes     []string
}

// Enabled reports whether the decay worker should run
func (d *DecayConfig) Enabled() bool {
	return len(d.Scopes) > 0
}

// Flags returns CLI flags for learner configuration
func (x *Learner) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "learner-config",
			Usage:       "Path to learner tuning TOML file (optional)",
			Category:    "Learner",
			Sources:     cli.EnvVars("ARGUS_LEARNER_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// Configure loads the learner file if given, falling back to defaults
func (x *Learner) Configure() (usecase.LearnerParams, *DecayConfig, error) {
	params := usecase.DefaultLearnerParams()
	decay := &DecayConfig{
		Interval:   time.Hour,
		StaleAfter: 30 * 24 * time.Hour,
		Factor:     0.95,
	}

	if x.configPath == "" {
		return params, decay, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.configPath)
	if err != nil {
		return params, nil, goerr.Wrap(ErrConfigNotFound, "failed to read learner config",
			goerr.V(ConfigPathKey, x.configPath))
	}

	var file LearnerFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return params, nil, goerr.Wrap(err, "failed to parse learner config",
			goerr.V(ConfigPathKey, x.configPath))
	}

	if file.Learner.LearningRate != 0 {
		if file.Learner.LearningRate <= 0 || file.Learner.LearningRate >= 1 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "learning_rate must be in (0,1)",
				goerr.V("learning_rate", file.Learner.LearningRate))
		}
		params.LearningRate = file.Learner.LearningRate
	}
	if file.Learner.InitialConfidence != 0 {
		if file.Learner.InitialConfidence <= 0 || file.Learner.InitialConfidence >= 1 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "initial_confidence must be in (0,1)",
				goerr.V("initial_confidence", file.Learner.InitialConfidence))
		}
		params.InitialConfidence = file.Learner.InitialConfidence
	}
	if file.Learner.ExampleCap != 0 {
		if file.Learner.ExampleCap < 1 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "example_cap must be positive",
				goerr.V("example_cap", file.Learner.ExampleCap))
		}
		params.ExampleCap = file.Learner.ExampleCap
	}

	if file.Decay.Interval != "" {
		d, err := time.ParseDuration(file.Decay.Interval)
		if err != nil || d <= 0 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "decay interval must be a positive duration",
				goerr.V("interval", file.Decay.Interval))
		}
		decay.Interval = d
	}
	if file.Decay.StaleAfter != "" {
		d, err := time.ParseDuration(file.Decay.StaleAfter)
		if err != nil || d <= 0 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "decay stale_after must be a positive duration",
				goerr.V("stale_after", file.Decay.StaleAfter))
		}
		decay.StaleAfter = d
	}
	if file.Decay.Factor != 0 {
		if file.Decay.Factor <= 0 || file.Decay.Factor >= 1 {
			return params, nil, goerr.Wrap(ErrInvalidConfig, "decay factor must be in (0,1)",
				goerr.V("factor", file.Decay.Factor))
		}
		decay.Factor = file.Decay.Factor
	}
	decay.Scopes = file.Decay.Scopes

	return params, decay, nil
}
