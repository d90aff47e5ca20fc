// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashish33/geosolver2/corpus"
	"github.com/ashish33/geosolver2/decoder"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/tagger"
)

func newDecodeCmd(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "decode CORPUS",
		Short: "Decode every sentence of a corpus into ranked formulas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			start, ok := c.Start()
			if !ok {
				return errors.New("catalog has no start signature")
			}
			cp, err := corpus.Load(c, args[0])
			if err != nil {
				return err
			}
			tg, err := a.tagger(c, cp)
			if err != nil {
				return err
			}
			unary, binary, err := a.models(c)
			if err != nil {
				return err
			}
			limit := a.cfg.Decoder.MaxResults
			if top > 0 {
				limit = top
			}
			dec, err := decoder.New(unary, binary, decoder.WithLogger(a.logger), decoder.WithMaxResults(limit))
			if err != nil {
				return err
			}

			inputs := make([]decoder.Input, len(cp.Examples))
			for i, ex := range cp.Examples {
				inputs[i] = decoder.Input{Context: tg.Context(ex.Sentence), Start: start}
			}
			dists, err := dec.DecodeAll(cmd.Context(), inputs, a.cfg.Decoder.Parallelism)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, ex := range cp.Examples {
				fmt.Fprintf(out, "%s: %s\n", exampleName(ex, i), ex.Sentence)
				if dists[i].Len() == 0 {
					fmt.Fprintln(out, "  (no formula)")
					continue
				}
				for _, e := range dists[i].Entries() {
					fmt.Fprintf(out, "  %.4f %s\n", e.Prob(), e.Formula)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 0, "print at most n formulas per sentence (overrides decoder.max_results)")
	return cmd
}

// tagger uses the configured lexicon, or learns one from the corpus gold
// tuples when the configuration has none.
func (a *app) tagger(c *ontology.Catalog, cp *corpus.Corpus) (*tagger.Tagger, error) {
	tc := a.cfg.Tagger
	var opts []tagger.Option
	if tc.NumberType != "" {
		opts = append(opts, tagger.WithNumbers(ontology.Type(tc.NumberType)))
	}
	if tc.LabelType != "" {
		opts = append(opts, tagger.WithLabels(ontology.Type(tc.LabelType), tc.MaxLabelLength))
	}
	if tc.CaseFolding {
		opts = append(opts, tagger.WithCaseFolding())
	}
	if len(tc.Lexicon) > 0 {
		return tagger.New(c, tc.Lexicon, opts...)
	}
	return tagger.FromGold(cp.Golds(), opts...), nil
}

func exampleName(ex *corpus.Example, i int) string {
	if strings.TrimSpace(ex.ID) != "" {
		return ex.ID
	}
	return fmt.Sprintf("#%d", i)
}
