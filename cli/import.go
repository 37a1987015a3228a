package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biotinker/pointcsv"
	"github.com/biotinker/pointcsv/record"
)

func importCmd(flags *sessionFlags) *cobra.Command {
	var format, separators, routine string
	var fromFile, overwrite bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Append one PTP statement per CSV line to the active routine",
		Long: `Reads X,Y,Z, X,Y,Z,W,P,R or joint angle lines separated by ',' or ';'.
Lines that do not parse are skipped and listed with their line number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			s, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer s.close()

			opts := pointcsv.DefaultImportOptions()
			if format == "" {
				format = s.cfg.Import.Format
			}
			if opts.Format, err = record.ParseFormat(format); err != nil {
				return err
			}
			if separators == "" {
				separators = s.cfg.Import.Separators
			}
			opts.Separators = separators
			opts.RoutineName = routine
			if fromFile {
				opts.RoutineName = pointcsv.RoutineNameFromPath(path)
			}
			opts.Overwrite = overwrite

			if err := s.selectRoutine(true); err != nil {
				return err
			}

			res, err := s.converter().ImportFile(ctx, path, opts)
			if err != nil {
				return selectionHint(err)
			}
			if res.Created > 0 {
				if err := s.save(ctx); err != nil {
					return err
				}
			}
			if err := s.report(res.String(), map[string]interface{}{"import": res.ToMap()}, res.Diagnostics); err != nil {
				return err
			}
			if res.Err != nil {
				return fmt.Errorf("import %s: %w", path, res.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "position_only, full_pose, joint_angles or coordinates")
	cmd.Flags().StringVar(&separators, "separators", "", "accepted field separators (default \",;\")")
	cmd.Flags().StringVar(&routine, "routine", "", "import into a new routine with this name")
	cmd.Flags().BoolVar(&fromFile, "routine-from-file", false, "name the new routine after the CSV file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing routine of the same name")
	cmd.MarkFlagsMutuallyExclusive("routine", "routine-from-file")

	return cmd
}
