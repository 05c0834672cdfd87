package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/johnnygoblue/orderbook/benchmark"
	"github.com/johnnygoblue/orderbook/common/file"
	"github.com/johnnygoblue/orderbook/common/math"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places written for every statistic
const Precision = 3

var errNoSummaries = errors.New("no benchmark summaries to report")

var csvHeader = []string{
	"Implementation",
	"Add Mean", "Add Median", "Add StdDev", "Add Min", "Add Max",
	"Modify Mean", "Modify Median", "Modify StdDev", "Modify Min", "Modify Max",
	"Delete Mean", "Delete Median", "Delete StdDev", "Delete Min", "Delete Max",
	"BestPrice Mean", "BestPrice Median", "BestPrice StdDev", "BestPrice Min", "BestPrice Max",
}

// Records converts summaries into CSV rows, header first
func Records(summaries []benchmark.Summary) [][]string {
	records := make([][]string, 0, len(summaries)+1)
	records = append(records, csvHeader)
	for i := range summaries {
		row := make([]string, 0, len(csvHeader))
		row = append(row, summaries[i].Strategy.Label())
		for _, s := range []math.Stats{summaries[i].Add, summaries[i].Modify, summaries[i].Delete, summaries[i].BestPrice} {
			row = append(row, format(s.Mean), format(s.Median), format(s.StdDev), format(s.Min), format(s.Max))
		}
		records = append(records, row)
	}
	return records
}

// WriteCSV writes one row per summary to path
func WriteCSV(path string, summaries []benchmark.Summary) error {
	if len(summaries) == 0 {
		return errNoSummaries
	}
	return file.WriteAsCSV(path, Records(summaries))
}

// Table prints the summaries in a human readable layout. Batch operations
// are reported in µs and the best price lookup in ns.
func Table(w io.Writer, summaries []benchmark.Summary) error {
	if len(summaries) == 0 {
		return errNoSummaries
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nBenchmark Results")
	fmt.Fprintln(tw, "=============================================")
	for i := range summaries {
		s := &summaries[i]
		fmt.Fprintf(tw, "\nImplementation: %s\n", s.Strategy.Label())
		row(tw, fmt.Sprintf("  Add %d orders", s.Orders), s.Add, "µs")
		row(tw, fmt.Sprintf("  Modify %d orders", s.Modifications), s.Modify, "µs")
		row(tw, fmt.Sprintf("  Delete %d orders", s.Deletions), s.Delete, "µs")
		row(tw, "  Get best prices", s.BestPrice, "ns")
	}
	return tw.Flush()
}

func row(w io.Writer, name string, s math.Stats, unit string) {
	fmt.Fprintf(w, "%s\tMean: %s\tMedian: %s\tStdDev: %s\tMin: %s\tMax: %s\t%s\n",
		name, format(s.Mean), format(s.Median), format(s.StdDev), format(s.Min), format(s.Max), unit)
}

func format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Precision)
}

var plotTemplate = template.Must(template.New("plot").Parse(`import pandas as pd
import matplotlib.pyplot as plt

df = pd.read_csv('{{.CSV}}')
fig, axes = plt.subplots(2, 2, figsize=(12, 10))

# Add Orders
df.plot.bar(x='Implementation', y='Add Mean', yerr='Add StdDev', capsize=4, ax=axes[0,0], title='Add Orders (μs)')
# Modify Orders
df.plot.bar(x='Implementation', y='Modify Mean', yerr='Modify StdDev', capsize=4, ax=axes[0,1], title='Modify Orders (μs)')
# Delete Orders
df.plot.bar(x='Implementation', y='Delete Mean', yerr='Delete StdDev', capsize=4, ax=axes[1,0], title='Delete Orders (μs)')
# Best Price
df.plot.bar(x='Implementation', y='BestPrice Mean', yerr='BestPrice StdDev', capsize=4, ax=axes[1,1], title='Best Price Lookup (ns)')

plt.tight_layout()
plt.savefig('{{.Image}}')
plt.show()
`))

// PlotScript renders the pandas/matplotlib script charting csvName
func PlotScript(csvName, image string) ([]byte, error) {
	var buf bytes.Buffer
	err := plotTemplate.Execute(&buf, struct{ CSV, Image string }{csvName, image})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlotScript writes the plot script for csvName to path. The chart is
// saved next to the CSV as a png.
func WritePlotScript(path, csvName string) error {
	script, err := PlotScript(csvName, imageName(csvName))
	if err != nil {
		return err
	}
	return file.Write(path, script)
}

func imageName(csvName string) string {
	return strings.TrimSuffix(csvName, filepath.Ext(csvName)) + ".png"
}
