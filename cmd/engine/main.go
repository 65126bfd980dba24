package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"vaki-engine/internal/config"
	"vaki-engine/internal/httpapi"
	"vaki-engine/internal/scrape"
	"vaki-engine/internal/scrape/hrge"
	"vaki-engine/internal/scrape/jobsge"
	"vaki-engine/internal/scrape/types"
	"vaki-engine/internal/scrape/util"
)

func main() {
	cfgPath := flag.String("config", filepath.Join("config", "config.yml"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("config load failed (%s): %v, using defaults", *cfgPath, err)
	}

	limiter := util.NewHostLimiter(cfg.Scrape.RatePerSec, cfg.Scrape.Burst)

	// Build the scraper list based on enabled flags
	var scrapers []types.Scraper
	if cfg.Sources.JobsGe.Enabled {
		scrapers = append(scrapers, jobsge.New(limiter))
	}
	if cfg.Sources.HrGe.Enabled {
		scrapers = append(scrapers, hrge.New(limiter))
	}
	if len(scrapers) == 0 {
		log.Fatal("no sources enabled")
	}

	agg := scrape.NewAggregator(scrapers, time.Duration(cfg.Scrape.TimeoutSeconds)*time.Second)

	mux := httpapi.NewMux(httpapi.Deps{Agg: agg})
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (sources=%v)", addr, agg.Sources())

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
