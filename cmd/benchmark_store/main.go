package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/ripplekit/ripple/store"
)

var (
	rowCounts = []int{100, 1_000, 10_000}
	iters     = 10
)

func main() {
	flag.Parse()
	log.Printf("warming up")

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"benchmark", "rows", "total", "per op"})

	for _, n := range rowCounts {
		tbl.Append(benchmarkFill(n))
		tbl.Append(benchmarkListeners(n))
		tbl.Append(benchmarkSorted(n))
	}

	tbl.Render()
}

// benchmarkFill times loading n rows into one table under a single
// transaction.
func benchmarkFill(n int) []string {
	var total time.Duration
	for i := 0; i < iters; i++ {
		s := store.New()
		start := time.Now()
		s.Transaction(func() {
			for r := 0; r < n; r++ {
				rowId := fmt.Sprintf("row%d", r)
				s.SetRow("pets", rowId, store.Row{"species": "dog", "legs": r % 5})
			}
		})
		total += time.Since(start)
	}
	return result("fill", n, total)
}

// benchmarkListeners times a transaction touching every row while a cell
// listener per row is registered.
func benchmarkListeners(n int) []string {
	s := store.New()
	s.Transaction(func() {
		for r := 0; r < n; r++ {
			s.SetCell("pets", fmt.Sprintf("row%d", r), "legs", 4)
		}
	})
	fired := 0
	for r := 0; r < n; r++ {
		s.AddCellListener("pets", fmt.Sprintf("row%d", r), "legs",
			func(s *store.Store, tableId, rowId, cellId string, newValue, oldValue store.Value) {
				fired++
			})
	}

	var total time.Duration
	for i := 0; i < iters; i++ {
		start := time.Now()
		s.Transaction(func() {
			for r := 0; r < n; r++ {
				s.SetCell("pets", fmt.Sprintf("row%d", r), "legs", i)
			}
		})
		total += time.Since(start)
	}
	return result("notify", n, total)
}

// benchmarkSorted times recomputing the sorted-row-ids view of a full
// table.
func benchmarkSorted(n int) []string {
	s := store.New()
	s.Transaction(func() {
		for r := 0; r < n; r++ {
			s.SetCell("pets", fmt.Sprintf("row%d", r), "weight", (r*7919)%n)
		}
	})

	var total time.Duration
	for i := 0; i < iters; i++ {
		start := time.Now()
		s.GetSortedRowIds("pets", "weight", false, 0, 0)
		total += time.Since(start)
	}
	return result("sort", n, total)
}

func result(name string, n int, total time.Duration) []string {
	perOp := total / time.Duration(iters*n)
	return []string{
		name,
		humanize.Comma(int64(n)),
		total.String(),
		perOp.String(),
	}
}
