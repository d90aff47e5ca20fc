// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ashish33/geosolver2/config"
	"github.com/ashish33/geosolver2/feature"
	"github.com/ashish33/geosolver2/loglinear"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "geosolver",
		Short:         "Parse geometry sentences into logical formulas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (defaults when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log_level from the configuration")

	root.AddCommand(newCatalogCmd(a), newTrainCmd(a), newDecodeCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) catalog() (*ontology.Catalog, error) {
	if a.cfg.Catalog == "" {
		return ontology.Default()
	}
	return ontology.Load(a.cfg.Catalog)
}

// models builds the unary and binary models over c from the configured
// weights and training parameters.
func (a *app) models(c *ontology.Catalog) (unary, binary *loglinear.Model, err error) {
	var enumOpts []rule.EnumeratorOption
	if a.cfg.Model.SubtypeMatching {
		enumOpts = append(enumOpts, rule.WithSubtypeMatching())
	}
	build := func(arity ontology.Arity, f feature.Func, dim int, w []float64) (*loglinear.Model, error) {
		enum, err := rule.NewEnumerator(c, arity, enumOpts...)
		if err != nil {
			return nil, err
		}
		opts := []loglinear.Option{
			loglinear.WithLogger(a.logger),
			loglinear.WithMaxIterations(a.cfg.Training.MaxIterations),
			loglinear.WithGradientThreshold(a.cfg.Training.GradientThreshold),
		}
		if len(w) > 0 {
			opts = append(opts, loglinear.WithWeights(w))
		}
		return loglinear.New(enum, f, dim, opts...)
	}
	if unary, err = build(ontology.Unary, feature.Unary, feature.UnaryDim, a.cfg.Model.UnaryWeights); err != nil {
		return nil, nil, fmt.Errorf("unary model: %w", err)
	}
	if binary, err = build(ontology.Binary, feature.Binary, feature.BinaryDim, a.cfg.Model.BinaryWeights); err != nil {
		return nil, nil, fmt.Errorf("binary model: %w", err)
	}
	return unary, binary, nil
}

func (a *app) outputPath(flag string) string {
	switch {
	case flag != "":
		return flag
	case a.configPath != "":
		return a.configPath
	}
	return "geosolver.yaml"
}
