// Command amrscore scores a gene-abundance CSV offline and writes the
// reports to stdout or a file, without starting the HTTP server.
// Usage: go run ./cmd/amrscore [-config config.yaml] [-format csv|json] [-o out] table.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/resistlab/amrburden/internal/app"
	"github.com/resistlab/amrburden/internal/artifact"
	"github.com/resistlab/amrburden/internal/catalog"
	"github.com/resistlab/amrburden/internal/dataset"
	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/report"
	"github.com/resistlab/amrburden/internal/scoring"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	format := flag.String("format", "json", "output format: csv or json")
	outPath := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: amrscore [flags] table.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	reports, excluded, err := score(cfg, flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		err = report.WriteCSV(out, reports)
	case "json":
		err = report.WriteJSON(out, reports)
	default:
		log.Fatalf("unknown format %q, want csv or json", *format)
	}
	if err != nil {
		log.Fatalf("writing output: %v", err)
	}

	for _, ex := range excluded {
		fmt.Fprintf(os.Stderr, "excluded %s: %s\n", ex.SampleID, ex.Reason)
	}
}

func score(cfg *app.Config, tablePath string) ([]model.SampleReport, []model.ExcludedSample, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading gene catalog: %w", err)
	}

	scaler, err := artifact.LoadScaler(cfg.ArtifactCfg.ScalerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scaler artifact: %w", err)
	}

	logger := interfaces.NewTestLogger(false)
	predictor, err := artifact.NewPredictor(cfg.ArtifactCfg, cat.Size(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loading predictor artifact: %w", err)
	}
	defer predictor.Close()

	pipe, err := scoring.NewPipeline(cat, scaler, predictor, cfg.ScoringCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(tablePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	samples, err := dataset.Read(f, cat)
	if err != nil {
		return nil, nil, err
	}

	var (
		reports  []model.SampleReport
		excluded []model.ExcludedSample
	)
	for _, s := range samples {
		rep, err := pipe.ScoreSample(s)
		if err != nil {
			excluded = append(excluded, model.ExcludedSample{SampleID: s.SampleID, Reason: err.Error()})
			continue
		}
		reports = append(reports, rep)
	}
	return reports, excluded, nil
}
