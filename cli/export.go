package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biotinker/pointcsv"
	"github.com/biotinker/pointcsv/record"
)

func exportCmd(flags *sessionFlags) *cobra.Command {
	var format string
	var precision int

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the target points of the active routine as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			s, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer s.close()

			opts := pointcsv.DefaultExportOptions()
			if format == "" {
				format = s.cfg.Export.Format
			}
			if opts.Format, err = record.ParseFormat(format); err != nil {
				return err
			}
			if precision <= 0 {
				precision = s.cfg.Export.Precision
			}
			opts.Precision = precision

			if err := s.selectRoutine(false); err != nil {
				return err
			}

			res, err := s.converter().ExportFile(ctx, path, opts)
			if err != nil {
				return selectionHint(err)
			}
			if err := s.report(res.String(), map[string]interface{}{"export": res.ToMap()}, res.Diagnostics); err != nil {
				return err
			}
			if res.Err != nil {
				return fmt.Errorf("export %s: %w", path, res.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "position_only, full_pose or joint_angles")
	cmd.Flags().IntVar(&precision, "precision", 0, "decimals per field (default 6)")

	return cmd
}
