package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/cli/pagination"
	"github.com/rshade/ecoplate/internal/config"
	"github.com/rshade/ecoplate/internal/tui"
)

// tabPadding is the padding between table columns.
const tabPadding = 2

// column is one table column of a list.
type column[T any] struct {
	header string
	value  func(T) string
}

// writeList renders items in the selected format.
func writeList[T any](w io.Writer, format string, items []T, cols []column[T]) error {
	switch format {
	case config.FormatJSON:
		if items == nil {
			items = []T{}
		}
		return writeJSON(w, items)
	case config.FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("encoding NDJSON: %w", err)
			}
		}
		return nil
	default:
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "No results.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		headers := make([]string, len(cols))
		for i, c := range cols {
			headers[i] = c.header
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for _, item := range items {
			cells := make([]string, len(cols))
			for i, c := range cols {
				cells[i] = c.value(item)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		return tw.Flush()
	}
}

// writeObject renders a single value. text renders the table format.
func writeObject(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, v)
	case config.FormatNDJSON:
		if err := json.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
		return nil
	default:
		return text(w)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// heading prints a section title, styled when stdout is a terminal.
func heading(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		fmt.Fprintln(out, tui.HeadingStyle.Render(title))
		return
	}
	fmt.Fprintln(out, title)
}

// listFlags are the sorting and paging flags of list commands.
type listFlags struct {
	params pagination.Params
	sort   string
}

func addListFlags(cmd *cobra.Command, lf *listFlags) {
	cmd.Flags().IntVar(&lf.params.Limit, "limit", pagination.DefaultLimit, "maximum number of results (0 = all)")
	cmd.Flags().IntVar(&lf.params.Offset, "offset", pagination.DefaultOffset, "number of results to skip")
	cmd.Flags().IntVar(&lf.params.Page, "page", 0, "page number (1-based, requires --page-size)")
	cmd.Flags().IntVar(&lf.params.PageSize, "page-size", 0, "results per page")
	cmd.Flags().StringVar(&lf.sort, "sort", "", "sort by field[:asc|desc]")
}

// applyList validates the flags, then sorts and pages items.
func applyList[T any](lf *listFlags, items []T, sorter *pagination.Sorter[T]) ([]T, error) {
	if err := lf.params.Validate(); err != nil {
		return nil, err
	}
	field, order, err := pagination.ParseSort(lf.sort)
	if err != nil {
		return nil, err
	}
	sorted, err := sorter.Sort(items, field, order)
	if err != nil {
		return nil, err
	}
	return pagination.Apply(lf.params, sorted), nil
}

// writePageFooter prints paging details below a table when results were cut.
func writePageFooter(w io.Writer, format string, lf *listFlags, total int) {
	if format != config.FormatTable || (lf.params.Limit == 0 && lf.params.Page == 0) {
		return
	}
	meta := pagination.NewMeta(lf.params, total)
	fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
}
