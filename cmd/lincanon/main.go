// SPDX-License-Identifier: MIT

// Command lincanon reads a YAML LinOp graph and prints its canonical sparse
// form as YAML.
//
// Usage:
//
//	lincanon <file.yaml>
//
// Documents with roots produce A (CSC), b and the row offsets of each root.
// Documents with a problem section produce conic solver data c, A, b, G, h
// and the cone dimensions. Both sections produce both outputs, separated by
// a YAML document marker.
//
// Environment:
//
//	LINCANON_LOG_LEVEL    debug, info, warn or error (default info)
//	LINCANON_EPSILON      division zero tolerance (default 0)
//	LINCANON_NO_VALIDATE  skip NaN/Inf checks on constants
//	LINCANON_OUTPUT       output path, "-" or empty for stdout
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/conic"
	"github.com/katalvlaran/lincanon/problemfile"
)

// errConfig indicates an unusable environment setting.
var errConfig = errors.New("lincanon: invalid configuration")

type config struct {
	level    slog.Level
	epsilon  float64
	validate bool
	output   string
}

func loadConfig() (config, error) {
	cfg := config{
		epsilon:  env.Float64("LINCANON_EPSILON", 0),
		validate: !env.Bool("LINCANON_NO_VALIDATE"),
		output:   env.Str("LINCANON_OUTPUT"),
	}
	if err := cfg.level.UnmarshalText([]byte(env.Str("LINCANON_LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("%w: LINCANON_LOG_LEVEL: %v", errConfig, err)
	}
	if cfg.epsilon < 0 || math.IsNaN(cfg.epsilon) || math.IsInf(cfg.epsilon, 0) {
		return cfg, fmt.Errorf("%w: LINCANON_EPSILON %g must be finite and non-negative", errConfig, cfg.epsilon)
	}

	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(run(os.Args[1:], cfg, os.Stdout, os.Stderr))
}

// run is main without the process: it returns the exit code.
func run(args []string, cfg config, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.level})).
		With(slog.String("component", "lincanon"))
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: lincanon <file.yaml>")
		return 2
	}
	path := args[0]

	g, err := problemfile.Load(path)
	if err != nil {
		logger.Error("load failed", slog.String("file", path), slog.Any("err", err))
		return 1
	}

	opts := []canon.Option{
		canon.WithLogger(logger),
		canon.WithEpsilon(cfg.epsilon),
		canon.WithValidateNaNInf(cfg.validate),
	}
	var buf bytes.Buffer
	if err := emit(&buf, g, opts, logger); err != nil {
		logger.Error("canonicalize failed", slog.String("file", path), slog.Any("err", err))
		return 1
	}

	// The output file is only touched once canonicalization succeeded.
	if cfg.output != "" && cfg.output != "-" {
		if err := os.WriteFile(cfg.output, buf.Bytes(), 0o644); err != nil {
			logger.Error("write output", slog.String("path", cfg.output), slog.Any("err", err))
			return 1
		}
		return 0
	}
	if _, err := buf.WriteTo(stdout); err != nil {
		logger.Error("write output", slog.Any("err", err))
		return 1
	}

	return 0
}

func emit(w io.Writer, g *problemfile.Graph, opts []canon.Option, logger *slog.Logger) error {
	if len(g.Roots) > 0 {
		pd, err := canon.Build(g.Roots, g.Order, opts...)
		if err != nil {
			return err
		}
		if err = problemfile.WriteAffine(w, pd, g.RootNames); err != nil {
			return err
		}
		logger.Info("affine form",
			slog.Int("roots", len(g.Roots)),
			slog.Int("rows", pd.A.Rows()),
			slog.Int("cols", pd.A.Cols()),
			slog.Int("nnz", pd.A.NNZ()),
		)
	}
	if g.Problem == nil {
		return nil
	}
	if len(g.Roots) > 0 {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	d, err := conic.Format(g.Problem, opts...)
	if err != nil {
		return err
	}
	if err = problemfile.WriteConic(w, d); err != nil {
		return err
	}
	logger.Info("conic form",
		slog.String("sense", d.Sense.String()),
		slog.Int("n", d.N),
		slog.Int("p", d.P()),
		slog.Int("m", d.M()),
	)

	return nil
}
