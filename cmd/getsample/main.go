// getsample pulls a sample window of NYC 311 requests from the open-data
// API and writes it as a local CSV readable by the api service.
package main

import (
	"context"
	"encoding/csv"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/Latifa2025-star/311calls/internal/logger"
	"github.com/Latifa2025-star/311calls/internal/socrata"
)

type options struct {
	Rows    int    `long:"rows" default:"10000" description:"Maximum rows to fetch"`
	Days    int    `long:"days" default:"120" description:"Lookback window in days"`
	Outfile string `long:"outfile" default:"sample.csv" description:"Output CSV path"`
	Token   string `long:"token" env:"SOCRATA_APP_TOKEN" description:"Socrata app token"`
	BaseURL string `long:"base-url" env:"SOCRATA_BASE_URL" description:"Override the API resource URL"`
}

func main() {
	_ = godotenv.Load()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	log := logger.New().WithComponent("getsample")
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -opts.Days)
	log.WithField("rows", opts.Rows).WithField("days", opts.Days).Info("fetching sample")

	client := socrata.NewClient(opts.BaseURL, opts.Token)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	batch, err := client.Fetch(ctx, start, end, opts.Rows)
	if err != nil {
		log.WithError(err).Fatal("fetch failed")
	}
	if len(batch.Rows) == 0 {
		log.Fatal("no data returned; try increasing --days or check the network/token")
	}

	f, err := os.Create(opts.Outfile)
	if err != nil {
		log.WithError(err).Fatal("create outfile")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(batch.Columns); err != nil {
		log.WithError(err).Fatal("write header")
	}
	if err := w.WriteAll(batch.Rows); err != nil {
		log.WithError(err).Fatal("write rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.WithError(err).Fatal("flush csv")
	}

	log.WithField("rows", len(batch.Rows)).WithField("outfile", opts.Outfile).Info("sample written")
}
