package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate CRS documents, PROJ definitions and attribute dumps",
	Long: `Validates each file according to its suffix:
  .yaml, .yml, .json   CRS documents
  .proj                PROJ definitions
  .attrs.json          ACDD global attribute dumps

Files are validated concurrently. The exit status is 1 when any file has
an error-severity issue or can not be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	results, err := validateInputs(cmd.Context(), args, func(name string) ([]byte, error) {
		return os.ReadFile(name)
	})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), results)
}

// validateInputs loads and validates every named input concurrently. The
// results keep the order of names.
func validateInputs(ctx context.Context, names []string, read func(string) ([]byte, error)) ([]fileResult, error) {
	c := container()
	ctx = cfg.Context(ctx)
	results := make([]fileResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = validateOne(gctx, c, name, read)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateOne(ctx context.Context, c *conformance.Container, name string, read func(string) ([]byte, error)) fileResult {
	kind := dataset.KindOf(name)
	res := fileResult{Name: name, Kind: kind.String()}
	data, err := read(name)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	obj, err := dataset.Decode(filepath.Base(name), data)
	if err != nil {
		res.Err = err.Error()
		logger.Debug("decode failed", zap.String("file", name), zap.Error(err))
		return res
	}
	res.Issues = c.Inspect(ctx, obj).Issues()
	logger.Debug("validated", zap.String("file", name), zap.Int("issues", len(res.Issues)))
	return res
}
