package expediente_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/cnbv-expediente/expediente-core/test/integration/expediente/support"
)

// testContext holds the per-scenario state. A fresh one is assigned in
// InitializeScenario so state never leaks between scenarios.
var testContext *support.TestContext

// InitializeScenario registers the step groups for every scenario in the
// suite.
func InitializeScenario(sc *godog.ScenarioContext) {
	testContext = support.NewTestContext()

	testContext.RegisterFusionSteps(sc)
	testContext.RegisterOCRSteps(sc)
	testContext.RegisterDocxSteps(sc)
}

// TestFeatures discovers every .feature file under features/ and runs it as
// its own godog suite, matching the pipeline driven directly through its
// exported package APIs rather than a built CLI binary — this module has no
// CLI in scope.
func TestFeatures(t *testing.T) {
	entries, err := os.ReadDir("features")
	if err != nil {
		t.Fatalf("failed to read features directory: %v", err)
	}

	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "pretty"
	}
	tags := os.Getenv("GODOG_TAGS")

	found := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".feature") {
			continue
		}
		found = true
		featurePath := filepath.Join("features", e.Name())

		t.Run(e.Name(), func(t *testing.T) {
			suite := godog.TestSuite{
				ScenarioInitializer: InitializeScenario,
				Options: &godog.Options{
					Format:   format,
					Tags:     tags,
					Paths:    []string{featurePath},
					TestingT: t,
				},
			}

			if suite.Run() != 0 {
				t.Fatalf("non-zero status returned for %s", featurePath)
			}
		})
	}

	if !found {
		t.Fatalf("no .feature files found in features/")
	}
}
