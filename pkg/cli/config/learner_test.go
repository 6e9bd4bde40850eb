package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/cli/config"
	"github.com/vigil-lab/argus/pkg/usecase"
)

func writeLearnerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "learner.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLearnerDefaults(t *testing.T) {
	var cfg config.Learner

	params, decay, err := cfg.Configure()
	gt.NoError(t, err)
	gt.V(t, params).Equal(usecase.DefaultLearnerParams())
	gt.V(t, decay.Interval).Equal(time.Hour)
	gt.B(t, decay.Enabled()).False()
}

func TestLearnerFromFile(t *testing.T) {
	path := writeLearnerFile(t, `
[learner]
learning_rate = 0.3
initial_confidence = 0.5
example_cap = 5

[decay]
interval = "30m"
stale_after = "168h"
factor = 0.9
scopes = ["biz-1", "biz-2"]
`)
	cfg := config.NewLearnerForTest(path)

	params, decay, err := cfg.Configure()
	gt.NoError(t, err)
	gt.V(t, params.LearningRate).Equal(0.3)
	gt.V(t, params.InitialConfidence).Equal(0.5)
	gt.N(t, params.ExampleCap).Equal(5)
	gt.V(t, decay.Interval).Equal(30 * time.Minute)
	gt.V(t, decay.StaleAfter).Equal(168 * time.Hour)
	gt.V(t, decay.Factor).Equal(0.9)
	gt.A(t, decay.Scopes).Length(2)
	gt.B(t, decay.Enabled()).True()
}

func TestLearnerPartialFile(t *testing.T) {
	path := writeLearnerFile(t, `
[learner]
example_cap = 20
`)
	cfg := config.NewLearnerForTest(path)

	params, decay, err := cfg.Configure()
	gt.NoError(t, err)
	// Unset values keep their defaults
	gt.V(t, params.LearningRate).Equal(usecase.DefaultLearnerParams().LearningRate)
	gt.N(t, params.ExampleCap).Equal(20)
	gt.V(t, decay.Factor).Equal(0.95)
}

func TestLearnerInvalidFile(t *testing.T) {
	testCases := map[string]string{
		"rate out of range": `
[learner]
learning_rate = 1.5
`,
		"confidence out of range": `
[learner]
initial_confidence = -0.1
`,
		"negative cap": `
[learner]
example_cap = -3
`,
		"bad factor": `
[decay]
factor = 2.0
`,
		"bad interval": `
[decay]
interval = "soon"
`,
	}

	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := config.NewLearnerForTest(writeLearnerFile(t, content))
			_, _, err := cfg.Configure()
			gt.Error(t, err)
		})
	}
}

func TestLearnerMissingFile(t *testing.T) {
	cfg := config.NewLearnerForTest("/nonexistent/learner.toml")
	_, _, err := cfg.Configure()
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}
