package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/storelinks/internal/links"
	"github.com/JonMunkholm/storelinks/internal/logging"
	"github.com/JonMunkholm/storelinks/internal/spreadsheet"
	"github.com/JonMunkholm/storelinks/internal/table"
)

// Sheet names of the generated workbooks.
const (
	SheetLinksByRow     = "links_by_row"
	SheetLinksInColumns = "links_in_columns"
	SheetLinksByStore   = "links_by_store"
	SheetSummary        = "summary"
	SheetOnePerStore    = "one_link_per_store"

	SheetMatched      = "Matched"
	SheetOnlyA        = "Only_in_A"
	SheetOnlyB        = "Only_in_B"
	SheetLinksA       = "A_links"
	SheetLinksB       = "B_links"
	SheetMatchedLinks = "Matched_links"

	SheetPairsUnique = "pairs_unique"
	SheetDiagnostics = "diagnostics"
)

// ErrNoFile is returned when a request carries no file content.
var ErrNoFile = errors.New("no file provided")

// Defaults for Options.
const (
	DefaultPreviewRows      = 5
	DefaultDiagnosticRows   = 50
	DefaultOperationTimeout = 2 * time.Minute
)

// Options configures a Service.
type Options struct {
	// PreferredLinkColumns overrides links.DefaultPreferredLinkColumns.
	PreferredLinkColumns []string
	// URLPrefix is prepended to bare visit GUIDs during hyperlink extraction.
	URLPrefix      string
	PreviewRows    int
	DiagnosticRows int
	// Timeout bounds a single operation, limiter wait included.
	Timeout time.Duration
}

// Service runs the store/link operations. It holds no per-run state and is
// safe for concurrent use.
type Service struct {
	opts    Options
	limiter *UploadLimiter
}

// NewService creates a Service. limiter may be nil, in which case operations
// are not throttled.
func NewService(opts Options, limiter *UploadLimiter) *Service {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = DefaultPreviewRows
	}
	if opts.DiagnosticRows <= 0 {
		opts.DiagnosticRows = DefaultDiagnosticRows
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOperationTimeout
	}
	return &Service{opts: opts, limiter: limiter}
}

// Limiter returns the limiter guarding operations, or nil.
func (s *Service) Limiter() *UploadLimiter {
	return s.limiter
}

// run bounds fn by the operation timeout and a limiter slot.
func (s *Service) run(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return err
		}
		defer s.limiter.Release()
	}

	return fn()
}

// Input is one uploaded file together with the user's picks for it.
type Input struct {
	FileName    string
	Data        []byte
	Sheet       string
	StoreColumn string
	LinkColumn  string
}

func (in Input) load() (*table.Table, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", in.FileName, ErrNoFile)
	}
	t, err := spreadsheet.Load(in.FileName, bytes.NewReader(in.Data), in.Sheet)
	if err != nil {
		return nil, err
	}
	return table.Normalize(t), nil
}

// InspectResult describes an uploaded file so the user can pick sheet and
// columns before running an operation.
type InspectResult struct {
	FileName    string       `json:"fileName"`
	Sheets      []string     `json:"sheets,omitempty"`
	Sheet       string       `json:"sheet,omitempty"`
	Columns     []string     `json:"columns"`
	Rows        int          `json:"rows"`
	StoreColumn string       `json:"storeColumn"`
	LinkColumns []string     `json:"linkColumns"`
	URLColumns  []string     `json:"urlColumns"`
	Preview     *table.Table `json:"-"`
}

// Inspect loads in and reports its sheets, columns, default column picks and
// the first rows. Column resolution failures leave the picks empty; they are
// not errors at this stage.
func (s *Service) Inspect(ctx context.Context, in Input) (*InspectResult, error) {
	var res *InspectResult
	err := s.run(ctx, func() error {
		if len(in.Data) == 0 {
			return fmt.Errorf("%s: %w", in.FileName, ErrNoFile)
		}
		sheets, err := spreadsheet.SheetNames(in.FileName, bytes.NewReader(in.Data))
		if err != nil {
			return err
		}
		sheet := in.Sheet
		if sheet == "" && len(sheets) > 0 {
			sheet = sheets[0]
		}
		in.Sheet = sheet

		t, err := in.load()
		if err != nil {
			return err
		}

		res = &InspectResult{
			FileName:   in.FileName,
			Sheets:     sheets,
			Sheet:      sheet,
			Columns:    t.Columns,
			Rows:       t.Len(),
			URLColumns: links.URLColumns(t),
			Preview:    t.Head(s.opts.PreviewRows),
		}
		if store, err := links.ResolveStoreColumn(t, in.StoreColumn); err == nil {
			res.StoreColumn = store
		}
		if cols, err := links.ResolveLinkColumns(t, in.LinkColumn, s.opts.PreferredLinkColumns); err == nil {
			res.LinkColumns = cols
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DedupRequest configures one deduplication run.
type DedupRequest struct {
	Input
	// OnePerStore adds the one_link_per_store sheet.
	OnePerStore bool
}

// DedupResult holds the deduplicated pairs, their grouping and the workbook
// with every view.
type DedupResult struct {
	Pairs    []links.Pair        `json:"pairs"`
	Groups   []links.Group       `json:"groups"`
	Summary  links.Summary       `json:"summary"`
	Sheets   []spreadsheet.Sheet `json:"-"`
	Workbook []byte              `json:"-"`
}

// View returns the named sheet's table, or nil.
func (r *DedupResult) View(name string) *table.Table {
	return sheetTable(r.Sheets, name)
}

// Dedup extracts the unique (store, link) pairs of req, groups them by store
// and renders the row, column and joined views plus a summary.
func (s *Service) Dedup(ctx context.Context, req DedupRequest) (*DedupResult, error) {
	logger := logging.WithFields(ctx, "op", "dedup", "file", req.FileName, "client_ip", ClientIPFromContext(ctx))
	start := time.Now()

	var res *DedupResult
	err := s.run(ctx, func() error {
		t, err := req.load()
		if err != nil {
			return err
		}
		storeCol, err := links.ResolveStoreColumn(t, req.StoreColumn)
		if err != nil {
			return err
		}
		linkCols, err := links.ResolveLinkColumns(t, req.LinkColumn, s.opts.PreferredLinkColumns)
		if err != nil {
			return err
		}

		pairs := links.Dedup(links.ExtractPairs(t, storeCol, linkCols))
		groups := links.GroupByStore(pairs)
		summary := links.Summarize(t.Len(), pairs, groups, storeCol, linkCols)

		sheets := []spreadsheet.Sheet{
			{Name: SheetLinksByRow, Table: links.RowView(pairs)},
			{Name: SheetLinksInColumns, Table: links.WideView(groups)},
			{Name: SheetLinksByStore, Table: links.JoinedView(groups), Numeric: []string{links.ColLinkCount}},
			{Name: SheetSummary, Table: links.SummaryView(summary), Numeric: summaryNumeric},
		}
		if req.OnePerStore {
			sheets = append(sheets, spreadsheet.Sheet{Name: SheetOnePerStore, Table: links.FirstLinkView(groups)})
		}

		wb, err := spreadsheet.WorkbookBytes(sheets)
		if err != nil {
			return err
		}

		res = &DedupResult{Pairs: pairs, Groups: groups, Summary: summary, Sheets: sheets, Workbook: wb}
		return nil
	})
	if err != nil {
		logger.Warn("dedup failed", "error", err)
		return nil, err
	}

	logger.Info("dedup completed",
		"store_column", res.Summary.StoreColumn,
		"link_columns", res.Summary.LinkColumns,
		"source_rows", res.Summary.SourceRows,
		"unique_pairs", res.Summary.UniquePairs,
		"stores", res.Summary.StoresWithLinks,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

var summaryNumeric = []string{"source_rows", "unique_pairs", "stores_with_links", "avg_unique_links_per_store"}

// CompareRequest configures a comparison of the store sets of two files.
type CompareRequest struct {
	A, B Input
	// IncludeLinks adds per-store link sheets for both files and a side by
	// side sheet for the matched stores.
	IncludeLinks bool
}

// CompareResult holds the comparison and its workbook.
type CompareResult struct {
	Comparison   links.Comparison    `json:"comparison"`
	StoreColumnA string              `json:"storeColumnA"`
	StoreColumnB string              `json:"storeColumnB"`
	LinksA       []links.Group       `json:"linksA,omitempty"`
	LinksB       []links.Group       `json:"linksB,omitempty"`
	Sheets       []spreadsheet.Sheet `json:"-"`
	Workbook     []byte              `json:"-"`
}

// View returns the named sheet's table, or nil.
func (r *CompareResult) View(name string) *table.Table {
	return sheetTable(r.Sheets, name)
}

// Compare computes the stores found in both files, only in A and only in B.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	logger := logging.WithFields(ctx, "op", "compare", "file_a", req.A.FileName, "file_b", req.B.FileName,
		"client_ip", ClientIPFromContext(ctx))
	start := time.Now()

	var res *CompareResult
	err := s.run(ctx, func() error {
		ta, storeA, err := loadStores(req.A)
		if err != nil {
			return fmt.Errorf("file A: %w", err)
		}
		tb, storeB, err := loadStores(req.B)
		if err != nil {
			return fmt.Errorf("file B: %w", err)
		}

		cmp := links.Compare(links.StoreSet(ta, storeA), links.StoreSet(tb, storeB))
		res = &CompareResult{Comparison: cmp, StoreColumnA: storeA, StoreColumnB: storeB}

		sheets := []spreadsheet.Sheet{
			{Name: SheetMatched, Table: links.StoreListView(cmp.Matched)},
			{Name: SheetOnlyA, Table: links.StoreListView(cmp.OnlyA)},
			{Name: SheetOnlyB, Table: links.StoreListView(cmp.OnlyB)},
		}
		if req.IncludeLinks {
			if res.LinksA, err = s.storeLinks(ta, storeA, req.A.LinkColumn); err != nil {
				return fmt.Errorf("file A: %w", err)
			}
			if res.LinksB, err = s.storeLinks(tb, storeB, req.B.LinkColumn); err != nil {
				return fmt.Errorf("file B: %w", err)
			}
			sheets = append(sheets,
				spreadsheet.Sheet{Name: SheetLinksA, Table: links.GroupListView(res.LinksA)},
				spreadsheet.Sheet{Name: SheetLinksB, Table: links.GroupListView(res.LinksB)},
				spreadsheet.Sheet{Name: SheetMatchedLinks, Table: links.SideBySideView(cmp.Matched, res.LinksA, res.LinksB)},
			)
		}

		wb, err := spreadsheet.WorkbookBytes(sheets)
		if err != nil {
			return err
		}
		res.Sheets = sheets
		res.Workbook = wb
		return nil
	})
	if err != nil {
		logger.Warn("compare failed", "error", err)
		return nil, err
	}

	logger.Info("compare completed",
		"matched", len(res.Comparison.Matched),
		"only_a", len(res.Comparison.OnlyA),
		"only_b", len(res.Comparison.OnlyB),
		"include_links", req.IncludeLinks,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func loadStores(in Input) (*table.Table, string, error) {
	t, err := in.load()
	if err != nil {
		return nil, "", err
	}
	col, err := links.ResolveStoreColumn(t, in.StoreColumn)
	if err != nil {
		return nil, "", err
	}
	return t, col, nil
}

// storeLinks aggregates the links of every store of t. The store column is
// renamed to "store" and normalized first so store names line up with the
// comparison sets. Link columns are resolved as for dedup; a file without
// any link column gives every store an empty link list, while a missing
// explicit column is an error.
func (s *Service) storeLinks(t *table.Table, storeCol, explicit string) ([]links.Group, error) {
	linkCols, err := links.ResolveLinkColumns(t, explicit, s.opts.PreferredLinkColumns)
	if err != nil && !errors.Is(err, links.ErrResolution) {
		return nil, err
	}

	keep := append([]string{storeCol}, linkCols...)
	sub := table.Normalize(t.Select(keep...).Rename(storeCol, table.StoreColumn))
	return links.Aggregate(sub, table.StoreColumn, linkCols), nil
}

// ExtractRequest configures a hyperlink extraction run.
type ExtractRequest struct {
	FileName string
	Data     []byte
	Options  spreadsheet.CellOptions
	// URLPrefix overrides Options.URLPrefix of the Service when set.
	URLPrefix string
}

// ExtractResult holds the pairs resolved from hyperlink cells.
type ExtractResult struct {
	Cells    int                 `json:"cells"`
	Pairs    []links.Pair        `json:"pairs"`
	Groups   []links.Group       `json:"groups"`
	Sheets   []spreadsheet.Sheet `json:"-"`
	Workbook []byte              `json:"-"`
}

// View returns the named sheet's table, or nil.
func (r *ExtractResult) View(name string) *table.Table {
	return sheetTable(r.Sheets, name)
}

// Extract reads store and link cells by column letter and resolves each link
// cell to a URL from its hyperlink target, HYPERLINK formula or visit GUID.
func (s *Service) Extract(ctx context.Context, req ExtractRequest) (*ExtractResult, error) {
	logger := logging.WithFields(ctx, "op", "extract", "file", req.FileName, "client_ip", ClientIPFromContext(ctx))
	start := time.Now()

	prefix := req.URLPrefix
	if prefix == "" {
		prefix = s.opts.URLPrefix
	}

	var res *ExtractResult
	err := s.run(ctx, func() error {
		if len(req.Data) == 0 {
			return fmt.Errorf("%s: %w", req.FileName, ErrNoFile)
		}
		cells, err := spreadsheet.ReadCells(req.FileName, bytes.NewReader(req.Data), req.Options)
		if err != nil {
			return err
		}

		pairs := links.Dedup(links.CellPairs(cells, prefix))
		groups := links.GroupByStore(pairs)

		sheets := []spreadsheet.Sheet{
			{Name: SheetPairsUnique, Table: links.RowView(pairs)},
			{Name: SheetLinksByStore, Table: links.JoinedView(groups), Numeric: []string{links.ColLinkCount}},
			{Name: SheetDiagnostics, Table: links.DiagnosticView(cells, prefix, s.opts.DiagnosticRows), Numeric: []string{"row"}},
		}
		wb, err := spreadsheet.WorkbookBytes(sheets)
		if err != nil {
			return err
		}

		res = &ExtractResult{Cells: len(cells), Pairs: pairs, Groups: groups, Sheets: sheets, Workbook: wb}
		return nil
	})
	if err != nil {
		logger.Warn("extract failed", "error", err)
		return nil, err
	}

	logger.Info("extract completed",
		"cells", res.Cells,
		"unique_pairs", len(res.Pairs),
		"stores", len(res.Groups),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func sheetTable(sheets []spreadsheet.Sheet, name string) *table.Table {
	for _, s := range sheets {
		if s.Name == name {
			return s.Table
		}
	}
	return nil
}
