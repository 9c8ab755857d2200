// File: internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/config"
	"github.com/xkilldash9x/flowlens-cli/internal/llmclient"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const captureFixture = `{
  "name": "Checkout Flow",
  "useCase": "ecommerce",
  "steps": [
    {
      "id": "step-1",
      "type": "IMAGE",
      "hotspots": [{"id": "hs-1", "label": "Add to cart", "x": 0.7, "y": 0.6}],
      "pageContext": {"url": "https://shop.example.com", "title": "Home"}
    }
  ],
  "capturedEvents": [
    {"type": "click", "timeMs": 1000, "frameX": 640, "frameY": 55},
    {"type": "click", "timeMs": 3000, "frameX": 800, "frameY": 480},
    {"type": "click", "timeMs": 3500, "frameX": 650, "frameY": 420}
  ]
}`

// stubNarrator satisfies Narrator without any network.
type stubNarrator struct {
	calls int32
	fail  bool
}

func (s *stubNarrator) Narrate(_ context.Context, _ llmclient.FlowContext) (schemas.NarrativeAnalysis, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.fail {
		return schemas.NarrativeAnalysis{}, assert.AnError
	}
	return schemas.NarrativeAnalysis{Summary: "The user added a lamp to the cart."}, nil
}

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(captureFixture), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Report.OutputDir = t.TempDir()
	cfg.Analyze.Concurrency = 2
	return cfg
}

func TestNew_NilDependencies(t *testing.T) {
	_, err := New(nil, zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestRunOne_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	narrator := &stubNarrator{}
	o, err := New(cfg, zap.NewNop(), narrator)
	require.NoError(t, err)

	input := writeFixture(t, t.TempDir(), "checkout.json")
	result, err := o.RunOne(context.Background(), input)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, input, result.SourceFile)
	assert.Equal(t, int32(1), atomic.LoadInt32(&narrator.calls))

	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	md := string(content)
	assert.Contains(t, md, "# Flow Analysis: Checkout Flow")
	assert.Contains(t, md, "The user added a lamp to the cart.")
	assert.Contains(t, md, "## Behavioral Analytics")
}

func TestRunOne_WithoutNarrator(t *testing.T) {
	o, err := New(testConfig(t), zap.NewNop(), nil)
	require.NoError(t, err)

	input := writeFixture(t, t.TempDir(), "checkout.json")
	result, err := o.RunOne(context.Background(), input)
	require.NoError(t, err)

	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "## Narrative Summary")
}

func TestRunOne_NarratorFailureDegrades(t *testing.T) {
	o, err := New(testConfig(t), zap.NewNop(), &stubNarrator{fail: true})
	require.NoError(t, err)

	input := writeFixture(t, t.TempDir(), "checkout.json")
	result, err := o.RunOne(context.Background(), input)
	require.NoError(t, err, "a narration failure must not fail the run")

	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "## Narrative Summary")
}

func TestRunOne_HTMLFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Format = "html"
	o, err := New(cfg, zap.NewNop(), nil)
	require.NoError(t, err)

	input := writeFixture(t, t.TempDir(), "checkout.json")
	result, err := o.RunOne(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, ".html", filepath.Ext(result.OutputFile))
	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<h1")
}

func TestRun_MultipleInputs(t *testing.T) {
	o, err := New(testConfig(t), zap.NewNop(), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	inputs := []string{
		writeFixture(t, dir, "a.json"),
		writeFixture(t, dir, "b.json"),
		writeFixture(t, dir, "c.json"),
	}

	results, err := o.Run(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results keep input order, and run IDs are unique.
	seen := map[string]bool{}
	for i, result := range results {
		assert.Equal(t, inputs[i], result.SourceFile)
		assert.False(t, seen[result.RunID], "run IDs must be unique")
		seen[result.RunID] = true
		assert.FileExists(t, result.OutputFile)
	}
}

func TestRun_FailedInputReportsPath(t *testing.T) {
	o, err := New(testConfig(t), zap.NewNop(), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	good := writeFixture(t, dir, "good.json")
	missing := filepath.Join(dir, "missing.json")

	_, err = o.Run(context.Background(), []string{good, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestRun_NoInputs(t *testing.T) {
	o, err := New(testConfig(t), zap.NewNop(), nil)
	require.NoError(t, err)

	_, err = o.Run(context.Background(), nil)
	assert.Error(t, err)
}
