// Command ivbench compares sorting large records through an indirect vector
// with sorting them in a contiguous slice.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fulldump/goconfig"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type Config struct {
	Count   int    `usage:"number of records per trial"`
	Keys    int    `usage:"number of distinct sort keys"`
	Trials  int    `usage:"number of trials"`
	Workers int    `usage:"number of trials run in parallel"`
	Seed    int64  `usage:"random seed of the first trial"`
	Stable  bool   `usage:"use a stable sort"`
	Skew    int    `usage:"zipf skew of the keys in hundredths (150 = 1.5), 0 for uniform"`
	Format  string `usage:"report format: JSON | TEXT"`
	Verbose bool   `usage:"log every vector operation"`
}

func main() {

	c := Config{
		Count:   100_000,
		Keys:    1_000,
		Trials:  4,
		Workers: 4,
		Seed:    1,
		Format:  "json",
	}
	goconfig.Read(&c)

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := c.validate(); err != nil {
		log.Fatal(err)
	}

	logger.Info("starting benchmark", "count", c.Count, "trials", c.Trials, "workers", c.Workers, "stable", c.Stable)

	report, err := Run(context.Background(), c, logger)
	if err != nil {
		log.Fatal(err)
	}

	switch strings.ToUpper(c.Format) {
	case "JSON":
		if err := json2.MarshalWrite(os.Stdout, report, jsontext.WithIndent("  ")); err != nil {
			log.Fatal(err)
		}
		os.Stdout.WriteString("\n")
	case "TEXT":
		report.WriteText(os.Stdout)
	default:
		log.Fatalf("Unknown format %s", c.Format)
	}
}
