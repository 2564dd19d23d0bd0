package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

func newFormsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Inspect and edit form definitions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List form definitions and their load state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := e.services(cmd.Context())
				if err != nil {
					return err
				}
				defs, err := svc.Catalog.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "FORM TYPE\tNAME\tCUSTOM\tFIELDS\tVERSION\tSTATE")
				for _, d := range defs {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%s\n",
						d.FormType, d.Name, d.Custom, len(d.EnabledFields()), d.Version, svc.Catalog.State(d.FormType))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "schema <form-type>",
			Short: "Print the client validation rules of a form",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := e.services(cmd.Context())
				if err != nil {
					return err
				}
				v, def, err := svc.Catalog.Validator(cmd.Context(), domain.FormType(args[0]))
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"formType":    def.FormType,
					"version":     def.Version,
					"fingerprint": v.Fingerprint(),
					"rules":       v.Rules(),
				})
			},
		},
		&cobra.Command{
			Use:   "create <name...>",
			Short: "Create an empty custom form",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := e.services(cmd.Context())
				if err != nil {
					return err
				}
				def, err := svc.Catalog.CreateCustomForm(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", def.FormType)
				return nil
			},
		},
	)
	return cmd
}
