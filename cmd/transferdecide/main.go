// Command transferdecide is a thin, file-in/file-out harness around the
// transferdecision engine: it reads a JSON scenario (one patient plus its
// candidate facilities), runs Decide, and prints the resulting
// TransferDecision as JSON. It exists for manual/CI smoke-testing of the
// engine in isolation -- it is not a service and carries no transport
// layer of its own.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	engine "github.com/kaelan-ross/transferdecision"
	"github.com/kaelan-ross/transferdecision/internal/metrics"
	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/internal/rulesconfig"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// scenario is the on-disk input shape: one patient, its candidate
// facilities, the incident type driving dispatch, and the evaluation
// timestamp used to compute the remaining survival window.
type scenario struct {
	Patient       model.Patient      `json:"patient"`
	Facilities    []model.Facility   `json:"facilities"`
	IncidentType  model.IncidentType `json:"incident_type"`
	CurrentTimeMS int64              `json:"current_time_ms"`
	Options       *model.Options     `json:"options,omitempty"`
}

func main() {
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario file (required)")
	rulesPath := flag.String("rules", "", "optional path to a YAML rules overlay")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: transferdecide -scenario scenario.json [-rules rules.yaml]")
		os.Exit(2)
	}

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("failed to load scenario", zap.Error(err))
	}

	table := rules.Default()
	if *rulesPath != "" {
		table, err = rulesconfig.Load(*rulesPath)
		if err != nil {
			logger.Fatal("failed to load rules overlay", zap.Error(err))
		}
	}

	e := &engine.Engine{
		Rules:   table,
		Logger:  logger,
		Metrics: metrics.NewRecorder(nil),
	}

	opts := model.DefaultOptions()
	if sc.Options != nil {
		opts = *sc.Options
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	decision := e.Decide(ctx, sc.Patient, sc.Facilities, sc.IncidentType, sc.CurrentTimeMS/1000, opts)

	out, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		logger.Fatal("failed to marshal decision", zap.Error(err))
	}
	fmt.Println(string(out))
}

func loadScenario(path string) (scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("read scenario file: %w", err)
	}
	var sc scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return scenario{}, fmt.Errorf("parse scenario file: %w", err)
	}
	return sc, nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
