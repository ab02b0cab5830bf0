package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"VCPScanner/internal/cache"
	"VCPScanner/internal/calculator"
	"VCPScanner/internal/collector"
	"VCPScanner/internal/config"
	"VCPScanner/internal/logger"
	"VCPScanner/internal/recorder"
	"VCPScanner/internal/scanner"
	"VCPScanner/internal/scheduler"
	"VCPScanner/internal/strategy"
	"VCPScanner/internal/watchlist"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logg := logger.New(cfg.Log.Level, cfg.Log.Format)
	logg.Info().Msg("vcp scanner starting")

	// Init provider
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	logg.Info().Str("source", fetcher.Name()).Msg("data source ready")

	// Init series cache
	var seriesCache cache.SeriesCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.CacheTTL(), logg)
		if err != nil {
			logg.Warn().Err(err).Msg("redis unavailable, caching disabled")
			seriesCache = cache.NewNoopCache()
		} else {
			seriesCache = rc
			defer rc.Close()
		}
	} else {
		seriesCache = cache.NewNoopCache()
	}

	seriesFetcher := collector.NewSeriesFetcher(fetcher, seriesCache, cfg.Scan.Retries, cfg.RetryDelay(), logg)

	// Init scan-history recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logg.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sink := recorder.NewCSVSink(cfg.Output.CSVPath)

	windows := calculator.Windows{
		Short:      cfg.Scan.ShortWindow,
		Long:       cfg.Scan.LongWindow,
		Volatility: cfg.Scan.VolatilityWindow,
		VolumeAvg:  cfg.Scan.VolumeWindow,
	}
	params := strategy.Params{
		RecentDays:          cfg.Scan.RecentDays,
		VolatilityThreshold: cfg.Scan.VolatilityThreshold,
		VolumeThreshold:     cfg.Scan.VolumeThreshold,
	}
	sc := scanner.New(seriesFetcher, cfg.Scan.Period, cfg.Scan.Workers, windows, params, logg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runScan := func() {
		symbols, err := watchlist.Load(cfg.Watchlist)
		if err != nil {
			logg.Warn().Err(err).Str("path", cfg.Watchlist).Msg("watchlist not loaded")
		}
		if len(symbols) == 0 {
			logg.Error().Msg("no symbols loaded, nothing to scan")
			return
		}

		matches := sc.Scan(ctx, symbols)

		scanDate := time.Now()
		if len(matches) > 0 {
			scanDate = matches[0].ScanDate
		}
		if err := rec.RecordScan(&recorder.ScanRun{
			ScanDate:       scanDate,
			SymbolsScanned: len(symbols),
			Matches:        matches,
		}); err != nil {
			logg.Error().Err(err).Msg("record scan history")
		}

		if len(matches) == 0 {
			logg.Info().Msg("no stocks matching VCP criteria found")
			return
		}
		if err := sink.Write(matches); err != nil {
			logg.Error().Err(err).Msg("write results")
			return
		}
		logg.Info().Int("matches", len(matches)).Str("file", cfg.Output.CSVPath).Msg("results saved")
	}

	// Batch mode: no cron schedule means a single scan.
	if cfg.Schedule.Cron == "" {
		runScan()
		return
	}

	sched := scheduler.New(logg)
	if err := sched.RegisterScan(cfg.Schedule.Cron, runScan); err != nil {
		log.Fatalf("register scan task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		logg.Info().Msg("RUN_ON_START enabled, scanning now")
		go runScan()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logg.Info().Msg("shutdown signal received, stopping")
	cancel()
}
