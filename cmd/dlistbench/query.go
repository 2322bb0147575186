package main

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"
)

// queryCommand runs a jq-style filter over the run history, the same
// shape as ues-lite/cmd/ds/queryJq.go's filter-over-exported-data command,
// pointed at dlistbench's own history table instead of a datastore view.
func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "filter recorded runs with a jq expression",
		ArgsUsage: "<jq-filter>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 100, Usage: "number of runs to consider"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("query requires exactly one jq filter argument")
			}

			store, err := openHistory(c.String("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.recent(c.Int("limit"))
			if err != nil {
				return err
			}

			input, err := toQueryable(rows)
			if err != nil {
				return err
			}

			query, err := gojq.Parse(c.Args().First())
			if err != nil {
				return fmt.Errorf("parse jq filter: %w", err)
			}

			iter := query.Run(input)
			for {
				v, ok := iter.Next()
				if !ok {
					return nil
				}
				if err, ok := v.(error); ok {
					return fmt.Errorf("jq evaluation: %w", err)
				}
				out, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("marshal jq result: %w", err)
				}
				fmt.Println(string(out))
			}
		},
	}
}

// toQueryable round-trips history rows through JSON so gojq sees plain
// map[string]interface{} values rather than unexported struct fields.
func toQueryable(rows []historyRow) (interface{}, error) {
	type exported struct {
		ID         int    `json:"id"`
		Operation  string `json:"operation"`
		N          int    `json:"n"`
		ElapsedNS  int64  `json:"elapsed_ns"`
		RecordedAt string `json:"recorded_at"`
	}
	converted := make([]exported, len(rows))
	for i, r := range rows {
		converted[i] = exported{r.id, r.operation, r.n, r.elapsedNS, r.recordedAt}
	}

	encoded, err := json.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("marshal history rows: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal history rows: %w", err)
	}
	return generic, nil
}
