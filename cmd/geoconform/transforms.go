package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/geoapi/geoconform/conformance/referencingtest"
	exop "github.com/geoapi/geoconform/example/operation"
)

var transformCodes []int

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "Run the math transform conformance suite on the built-in projections",
	Long: `Creates the conversion of each predefined projected CRS, compares the
projection of sample points with the published values, then checks batch
consistency, inverse round trips and derivatives over the area of use.`,
	Args: cobra.NoArgs,
	RunE: runTransforms,
}

func init() {
	transformsCmd.Flags().IntSliceVar(&transformCodes, "code", nil, "CRS codes to test (default: all)")
}

type transformView struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

func runTransforms(cmd *cobra.Command, args []string) error {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	suite.Configure(cfg)
	suite.Validators = container()
	suite.Logger = logger

	ctx := cmd.Context()
	results := suite.RunAll(ctx, transformCodes...)
	if err := ctx.Err(); err != nil {
		return err
	}

	views := make([]transformView, len(results))
	failed := false
	for i, r := range results {
		views[i] = transformView{Code: r.Code, Method: r.Method, OK: r.Err == nil}
		if r.Err != nil {
			views[i].Error = r.Err.Error()
			failed = true
		}
	}
	if err := renderTransforms(cmd.OutOrStdout(), views); err != nil {
		return err
	}
	if failed {
		return errFailed
	}
	return nil
}

func renderTransforms(w io.Writer, views []transformView) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}
	b := &strings.Builder{}
	for _, v := range views {
		status := "ok"
		if !v.OK {
			status = "FAIL: " + v.Error
		}
		fmt.Fprintf(b, "%-10d %-40s %s\n", v.Code, v.Method, status)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
