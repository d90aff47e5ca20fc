// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashish33/geosolver2/ontology"
)

func newCatalogCmd(a *app) *cobra.Command {
	var arity string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the signatures of the configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			sigs := c.Signatures()
			if arity != "" {
				ar, err := parseArity(arity)
				if err != nil {
					return err
				}
				sigs = c.ByArity(ar)
			}
			out := cmd.OutOrStdout()
			for _, s := range sigs {
				fmt.Fprintln(out, s.Describe())
			}
			if start, ok := c.Start(); ok {
				fmt.Fprintf(out, "start: %s\n", start.ID())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&arity, "arity", "", "only list one arity class (leaf, unary, binary)")
	return cmd
}

func parseArity(s string) (ontology.Arity, error) {
	for _, a := range []ontology.Arity{ontology.Leaf, ontology.Unary, ontology.Binary, ontology.Nary} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown arity %q", s)
}
