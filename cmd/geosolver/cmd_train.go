// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ashish33/geosolver2/corpus"
	"github.com/ashish33/geosolver2/loglinear"
	"github.com/ashish33/geosolver2/rule"
)

func newTrainCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "train CORPUS",
		Short: "Fit both models to the gold tuples of a corpus and save the weights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			cp, err := corpus.Load(c, args[0])
			if err != nil {
				return err
			}
			unary, binary, err := a.models(c)
			if err != nil {
				return err
			}

			fit := func(m *loglinear.Model, rules []rule.Rule) ([]float64, error) {
				res, err := m.TrainContext(cmd.Context(), rules, a.cfg.Training.L2)
				switch {
				case errors.Is(err, loglinear.ErrEmptyCorpus):
					a.logger.Warn("no gold rules", slog.String("arity", m.Arity().String()))
					return nil, nil
				case errors.Is(err, loglinear.ErrOptimizationDidNotConverge):
					a.logger.Warn("keeping previous weights", slog.String("arity", m.Arity().String()), slog.Any("err", err))
					return nil, nil
				case err != nil:
					return nil, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d skipped, log-likelihood %.4f -> %.4f in %d iterations\n",
					m.Arity(), len(rules), res.Skipped, res.InitialLogLikelihood, res.LogLikelihood, res.Iterations)
				return res.Weights, nil
			}

			w, err := fit(unary, cp.UnaryRules())
			if err != nil {
				return err
			}
			if w != nil {
				a.cfg.Model.UnaryWeights = w
			}
			if w, err = fit(binary, cp.BinaryRules()); err != nil {
				return err
			}
			if w != nil {
				a.cfg.Model.BinaryWeights = w
			}

			path := a.outputPath(out)
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			a.logger.Info("weights saved", slog.String("path", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "where to write the trained configuration (defaults to --config)")
	return cmd
}
