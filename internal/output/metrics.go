package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jeduden/readscore/internal/metrics"
)

// WriteMetricsList writes the metric registry entries in defs.
func WriteMetricsList(w io.Writer, format string, defs []metrics.Definition) error {
	switch format {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "ID\tNAME\tSCOPE\tORDER\tDEFAULT\tDESCRIPTION"); err != nil {
			return err
		}
		for _, def := range defs {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
				def.ID, def.Name, def.Scope, def.DefaultOrder, def.Default, def.Description); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "json":
		items := make([]map[string]any, 0, len(defs))
		for _, def := range defs {
			items = append(items, map[string]any{
				"id":            def.ID,
				"name":          def.Name,
				"description":   def.Description,
				"scope":         def.Scope,
				"default":       def.Default,
				"default_order": def.DefaultOrder,
			})
		}
		return encodeJSON(w, items)
	}
	return unknownFormat(format)
}

// WriteRank writes ranked rows with one column per metric in defs.
func WriteRank(w io.Writer, format string, rows []metrics.Row, defs []metrics.Definition) error {
	switch format {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		headers := make([]string, 0, len(defs)+1)
		for _, def := range defs {
			headers = append(headers, strings.ToUpper(def.Name))
		}
		headers = append(headers, "PATH")
		if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
			return err
		}
		for _, row := range rows {
			cols := make([]string, 0, len(defs)+1)
			for _, def := range defs {
				cols = append(cols, metrics.FormatValue(def, row.Metrics[def.Name]))
			}
			cols = append(cols, row.Path)
			if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "json":
		items := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			item := map[string]any{"path": row.Path}
			for _, def := range defs {
				item[def.Name] = metrics.JSONValue(def, row.Metrics[def.Name])
			}
			items = append(items, item)
		}
		return encodeJSON(w, items)
	}
	return unknownFormat(format)
}
