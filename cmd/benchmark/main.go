package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ripplekit/ripple/signals"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkPropagate()
}

// benchmarkPropagate times one source write propagating through w
// independent computed chains of depth h, each terminated by an effect.
func benchmarkPropagate() {
	tbl := table.NewWriter()
	tbl.SetTitle("Ripple Signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rc := signals.NewReactiveContext(signals.WithOnError(func(err error) {
				log.Panic(err)
			}))
			src := signals.Signal(rc, 1)
			for i := 0; i < w; i++ {
				read := src.Value
				for j := 0; j < h; j++ {
					prev := read
					c := signals.Computed(rc, func() int {
						return prev() + 1
					})
					read = c.Value
				}
				last := read
				signals.Effect(rc, func() error {
					last()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
}
