package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// historyStore appends benchmark run timings to a local sqlite database so
// regressions are visible across runs. It only ever persists run metadata
// (operation name, N, elapsed time), never the DList's own contents.
type historyStore struct {
	db *sql.DB
}

func openHistory(path string) (*historyStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL,
			n INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &historyStore{db: db}, nil
}

func (h *historyStore) Close() error {
	return h.db.Close()
}

func (h *historyStore) record(t timing) error {
	_, err := h.db.Exec(
		`INSERT INTO runs (operation, n, elapsed_ns, recorded_at) VALUES (?, ?, ?, ?)`,
		t.operation, t.n, t.elapsed.Nanoseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

type historyRow struct {
	id         int
	operation  string
	n          int
	elapsedNS  int64
	recordedAt string
}

func (h *historyStore) recent(limit int) ([]historyRow, error) {
	rows, err := h.db.Query(
		`SELECT id, operation, n, elapsed_ns, recorded_at FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []historyRow
	for rows.Next() {
		var r historyRow
		if err := rows.Scan(&r.id, &r.operation, &r.n, &r.elapsedNS, &r.recordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "show recent benchmark runs recorded in the history database",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			store, err := openHistory(c.String("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.recent(c.Int("limit"))
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Operation", "N", "Elapsed", "Recorded At"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.id, r.operation, r.n, time.Duration(r.elapsedNS), r.recordedAt})
			}
			t.Render()
			return nil
		},
	}
}
