package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/aesopov/dlist"
	"github.com/aesopov/dlist/internal/gendata"
)

type timing struct {
	operation string
	n         int
	elapsed   time.Duration
}

func (t timing) opsPerSecond() float64 {
	if t.elapsed <= 0 {
		return 0
	}
	return float64(t.n) / t.elapsed.Seconds()
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run an append/insert/lookup/delete workload and report timings",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 10000, Usage: "number of elements"},
			&cli.IntFlag{Name: "length", Value: 32, Usage: "payload length in bytes"},
			&cli.BoolFlag{Name: "random-index", Usage: "insert at random positions instead of appending"},
			&cli.BoolFlag{Name: "save", Value: true, Usage: "record this run in the history database"},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("n")
			length := c.Int("length")
			payloads := gendata.Payloads(n, length)

			d := dlist.New[string, int](dlist.ByteLengthMeasurer{})

			insertTiming := timeInsert(d, payloads, c.Bool("random-index"))
			getIndexTiming := timeGetByIndex(d, n)
			getDistanceTiming := timeGetByDistance(d, n)
			deleteTiming := timeDeleteAll(d)

			results := []timing{insertTiming, getIndexTiming, getDistanceTiming, deleteTiming}
			render(results)

			if c.Bool("save") {
				store, err := openHistory(c.String("db"))
				if err != nil {
					return err
				}
				defer store.Close()
				for _, r := range results {
					if err := store.record(r); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func timeInsert(d *dlist.DList[string, int], payloads []string, randomIndex bool) timing {
	start := time.Now()
	for i, p := range payloads {
		if randomIndex && i > 0 {
			d.Insert(pseudoRandomIndex(i), p)
		} else {
			d.Append(p)
		}
	}
	return timing{operation: "insert", n: len(payloads), elapsed: time.Since(start)}
}

func timeGetByIndex(d *dlist.DList[string, int], n int) timing {
	size := d.Size()
	start := time.Now()
	for i := 0; i < n; i++ {
		if size == 0 {
			break
		}
		d.GetByIndex(i % size)
	}
	return timing{operation: "get_by_index", n: n, elapsed: time.Since(start)}
}

func timeGetByDistance(d *dlist.DList[string, int], n int) timing {
	length := d.Length()
	start := time.Now()
	for i := 0; i < n; i++ {
		if length == 0 {
			break
		}
		d.GetByDistance((i * 2654435761) % length)
	}
	return timing{operation: "get_by_distance", n: n, elapsed: time.Since(start)}
}

func timeDeleteAll(d *dlist.DList[string, int]) timing {
	n := d.Size()
	start := time.Now()
	for d.Size() > 0 {
		d.Delete(0)
	}
	return timing{operation: "delete_from_head", n: n, elapsed: time.Since(start)}
}

// pseudoRandomIndex scatters an insertion index across [0, bound] (bound
// being the list's current size) without pulling math/rand into the hot
// insertion loop; it only needs to avoid degenerating to always-head or
// always-tail insertion, not be unpredictable.
func pseudoRandomIndex(bound int) int {
	if bound <= 0 {
		return 0
	}
	return int((uint64(bound) * 2654435761) % uint64(bound+1))
}

func render(results []timing) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Operation", "N", "Elapsed", "Ops/sec"})
	for _, r := range results {
		t.AppendRow(table.Row{r.operation, r.n, r.elapsed, int(r.opsPerSecond())})
	}
	t.Render()
}
