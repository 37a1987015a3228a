package pointcsv

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/biotinker/pointcsv/record"
)

const (
	importCommandKey = "import"
	exportCommandKey = "export"
)

type importCommand struct {
	Path       string `mapstructure:"path"`
	Format     string `mapstructure:"format"`
	Separators string `mapstructure:"separators"`
	Routine    string `mapstructure:"routine"`
	Overwrite  bool   `mapstructure:"overwrite"`
}

type exportCommand struct {
	Path      string `mapstructure:"path"`
	Format    string `mapstructure:"format"`
	Precision int    `mapstructure:"precision"`
}

// DoCommand runs an import or export described by a generic map, e.g.
//
//	{"import": {"path": "points.csv", "format": "joint_angles"}}
//	{"export": {"path": "out.csv", "format": "position_only"}}
//
// The response holds the operation result under the same key.
func (c *Converter) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	if raw, ok := cmd[importCommandKey]; ok {
		var req importCommand
		if err := mapstructure.Decode(raw, &req); err != nil {
			return nil, fmt.Errorf("decode import command: %w", err)
		}
		opts, err := req.options()
		if err != nil {
			return nil, err
		}
		res, err := c.ImportFile(ctx, req.Path, opts)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{importCommandKey: res.ToMap()}, nil
	}

	if raw, ok := cmd[exportCommandKey]; ok {
		var req exportCommand
		if err := mapstructure.Decode(raw, &req); err != nil {
			return nil, fmt.Errorf("decode export command: %w", err)
		}
		opts, err := req.options()
		if err != nil {
			return nil, err
		}
		res, err := c.ExportFile(ctx, req.Path, opts)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{exportCommandKey: res.ToMap()}, nil
	}

	return nil, fmt.Errorf("unknown command, expected %q or %q", importCommandKey, exportCommandKey)
}

func (req importCommand) options() (ImportOptions, error) {
	if req.Path == "" {
		return ImportOptions{}, fmt.Errorf("import command: path is required")
	}
	opts := DefaultImportOptions()
	if req.Format != "" {
		format, err := record.ParseFormat(req.Format)
		if err != nil {
			return ImportOptions{}, err
		}
		opts.Format = format
	}
	if req.Separators != "" {
		opts.Separators = req.Separators
	}
	opts.RoutineName = req.Routine
	opts.Overwrite = req.Overwrite
	return opts, nil
}

func (req exportCommand) options() (ExportOptions, error) {
	if req.Path == "" {
		return ExportOptions{}, fmt.Errorf("export command: path is required")
	}
	opts := DefaultExportOptions()
	if req.Format != "" {
		format, err := record.ParseFormat(req.Format)
		if err != nil {
			return ExportOptions{}, err
		}
		opts.Format = format
	}
	if req.Precision > 0 {
		opts.Precision = req.Precision
	}
	return opts, nil
}
