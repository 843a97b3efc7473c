package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/spreadsheet"
)

func newDedupCmd(a *app) *cobra.Command {
	var in core.Input
	var input, output string
	var onePerStore bool

	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Write the unique links of every store to a workbook",
		Long: `Read a CSV or Excel file, detect the store and link columns, drop
repeated (store, link) pairs and write every view to one workbook.

Example: storelinks dedup --input visits.xlsx --sheet Visits --store-col tienda`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readInput(input, &in); err != nil {
				return err
			}
			res, err := a.service.Dedup(cmd.Context(), core.DedupRequest{Input: in, OnePerStore: onePerStore})
			if err != nil {
				return err
			}

			if output == "" {
				output = core.OutputName(input, core.DedupSuffix)
			}
			if err := writeOutput(output, res.Workbook); err != nil {
				return err
			}

			sum := res.Summary
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d unique pairs, %d stores, %v links per store\n",
				output, sum.UniquePairs, sum.StoresWithLinks, sum.AvgLinks)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input .csv/.xlsx file")
	cmd.Flags().StringVar(&in.Sheet, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&in.StoreColumn, "store-col", "", "Store column (default: detected)")
	cmd.Flags().StringVar(&in.LinkColumn, "link-col", "", "Link column when there are no link* columns")
	cmd.Flags().StringVar(&output, "output", "", "Output workbook (default: <input>_dedup.xlsx)")
	cmd.Flags().BoolVar(&onePerStore, "one-per-store", true, "Add a sheet with the first link of each store")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	var input, output, urlPrefix string
	opts := spreadsheet.DefaultCellOptions()

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Resolve links from hyperlink cells addressed by column letter",
		Long: `Read the store column and the link column of a workbook by letter and
resolve each link cell: hyperlink target first, then a URL inside a
HYPERLINK formula, then a bare visit id joined to --url-prefix.

Example: storelinks extract --input visits.xlsx --store-letter E --link-letter L --start-row 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in core.Input
			if err := readInput(input, &in); err != nil {
				return err
			}
			if urlPrefix == "" {
				urlPrefix = a.links.URLPrefix
			}

			res, err := a.service.Extract(cmd.Context(), core.ExtractRequest{
				FileName:  in.FileName,
				Data:      in.Data,
				Options:   opts,
				URLPrefix: urlPrefix,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = core.OutputName(input, core.ExtractSuffix)
			}
			if err := writeOutput(output, res.Workbook); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows read, %d unique pairs, %d stores\n",
				output, res.Cells, len(res.Pairs), len(res.Groups))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input .xlsx workbook")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&opts.StoreLetter, "store-letter", opts.StoreLetter, "Column letter of the store names")
	cmd.Flags().StringVar(&opts.LinkLetter, "link-letter", opts.LinkLetter, "Column letter of the link cells")
	cmd.Flags().IntVar(&opts.StartRow, "start-row", opts.StartRow, "First data row (1-based)")
	cmd.Flags().StringVar(&urlPrefix, "url-prefix", "", "Prefix for bare visit ids (default: LINKS_URL_PREFIX)")
	cmd.Flags().StringVar(&output, "output", "", "Output workbook (default: <input>_store_links.xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var inA, inB core.Input
	var pathA, pathB, output string
	var includeLinks bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "List the stores found in both files, only in A and only in B",
		Long: `Compare the store sets of two CSV or Excel files after normalizing the
store names.

Example: storelinks compare --a january.csv --b february.xlsx --store-col-b tienda --links --link-col-b web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readInput(pathA, &inA); err != nil {
				return err
			}
			if err := readInput(pathB, &inB); err != nil {
				return err
			}

			res, err := a.service.Compare(cmd.Context(), core.CompareRequest{A: inA, B: inB, IncludeLinks: includeLinks})
			if err != nil {
				return err
			}

			if output == "" {
				output = core.CompareOutputName
			}
			if err := writeOutput(output, res.Workbook); err != nil {
				return err
			}

			c := res.Comparison
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in both, %d only in A, %d only in B\n",
				output, len(c.Matched), len(c.OnlyA), len(c.OnlyB))
			return nil
		},
	}

	cmd.Flags().StringVar(&pathA, "a", "", "File A (.csv/.xlsx)")
	cmd.Flags().StringVar(&pathB, "b", "", "File B (.csv/.xlsx)")
	cmd.Flags().StringVar(&inA.Sheet, "sheet-a", "", "Sheet of file A")
	cmd.Flags().StringVar(&inB.Sheet, "sheet-b", "", "Sheet of file B")
	cmd.Flags().StringVar(&inA.StoreColumn, "store-col-a", "", "Store column of file A (default: detected)")
	cmd.Flags().StringVar(&inB.StoreColumn, "store-col-b", "", "Store column of file B (default: detected)")
	cmd.Flags().StringVar(&inA.LinkColumn, "link-col-a", "", "Link column of file A when it has no link* columns (with --links)")
	cmd.Flags().StringVar(&inB.LinkColumn, "link-col-b", "", "Link column of file B when it has no link* columns (with --links)")
	cmd.Flags().BoolVar(&includeLinks, "links", false, "Add the links of each store and a side by side sheet")
	cmd.Flags().StringVar(&output, "output", "", "Output workbook (default: "+core.CompareOutputName+")")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

// readInput fills the file name and content of in from path.
func readInput(path string, in *core.Input) error {
	data, err := spreadsheet.ReadFile(path)
	if err != nil {
		return err
	}
	in.FileName = filepath.Base(path)
	in.Data = data
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("workbook written", "path", path, "bytes", len(data))
	return nil
}
