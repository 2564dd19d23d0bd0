package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

func newRecordsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Export and import records as Excel workbooks",
	}

	var dir string
	exportCmd := &cobra.Command{
		Use:   "export <form-type>",
		Short: "Write all records of a form to an .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			buf, filename, err := svc.Export.Export(cmd.Context(), domain.FormType(args[0]))
			if err != nil {
				return err
			}
			path := filepath.Join(dir, filename)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")

	importCmd := &cobra.Command{
		Use:   "import <form-type> <file.xlsx>",
		Short: "Submit every row of a workbook as a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Export.Import(cmd.Context(), domain.FormType(args[0]), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %d, failed %d\n", res.Created, len(res.Failed))
			for _, fr := range res.Failed {
				fmt.Fprintf(out, "  row %d: %s\n", fr.Row, fr.Error)
			}
			return nil
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
