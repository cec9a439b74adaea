// cmd/satyasetu/main.go
//
// SatyaSetu analyzes news content for misinformation signals. It runs either
// as a long-lived service with an HTTP dashboard and a scheduled RSS
// monitor, or as a one-shot CLI via the "analyze" subcommand.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "analyze" {
		runAnalyzeCommand(os.Args[2:])
		return
	}
	runServer()
}

// runAnalyzeCommand performs one analysis and prints the result as JSON
func runAnalyzeCommand(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	title := fs.String("title", "", "headline or claim to analyze")
	text := fs.String("text", "", "body text of the content")
	sourceURL := fs.String("url", "", "URL the content came from")
	credibility := fs.Float64("credibility", 0, "known source credibility 0-10 (0 = neutral)")
	skipWeb := fs.Bool("skip-web", false, "skip live web verification")
	configPath := fs.String("config", "config/config.json", "path to config file")
	fs.Parse(args)

	if *title == "" && *text == "" {
		fmt.Fprintln(os.Stderr, "analyze requires -title or -text")
		fs.Usage()
		os.Exit(2)
	}

	engine, _, err := bootstrap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := engine.Analyze(ctx, &AnalyzeRequest{
		Title:             *title,
		Text:              *text,
		URL:               *sourceURL,
		SourceCredibility: *credibility,
		SkipWebVerify:     *skipWeb,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encoding result: %v\n", err)
		os.Exit(1)
	}
}

// runServer starts the dashboard and the feed monitor and blocks on signals
func runServer() {
	configPath := "config/config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	engine, store, err := bootstrap(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	feeds, err := LoadFeeds(cfg.FeedsPath)
	if err != nil {
		Logger().Warning("feeds unavailable: %v", err)
		feeds = nil
	}

	dashboard := NewDashboard(engine, store, feeds)
	dashboard.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var scheduler interface{ Stop() context.Context }
	if cfg.EnableMonitor && len(feeds) > 0 {
		monitor := NewMonitor(engine, store, feeds, cfg.MaxItemsPerFeed, dashboard.NotifyAnalysis)
		c, err := StartScheduler(ctx, monitor)
		if err != nil {
			Logger().Error("scheduler: %v", err)
			os.Exit(1)
		}
		scheduler = c
	}

	Logger().Info("SatyaSetu %s started", cfg.Version)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	Logger().Info("received %s, shutting down", sig)

	cancel()
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	dashboard.Shutdown(shutdownCtx)
	Logger().Close()
}

// bootstrap loads config, initializes logging and assembles the engine
func bootstrap(configPath string) (*Engine, *Store, error) {
	LoadEnv()

	var err error
	cfg, err = LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := InitLogger(cfg.LogPath, ParseLogLevel(cfg.LogLevel)); err != nil {
		return nil, nil, err
	}

	store, err := NewStore(cfg.DataDir, cfg.MaxStoredAnalyses)
	if err != nil {
		return nil, nil, err
	}

	var oracle ReasoningOracle = NewNullOracle()
	if cfg.EnableOracle && cfg.GroqAPIKey != "" {
		oracle = NewGroqOracle(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
		Logger().Info("reasoning oracle enabled (model %s)", cfg.GroqModel)
	}

	factCheck := NewNullFactCheck()
	if cfg.EnableFactCheck && cfg.GoogleFactCheckAPIKey != "" {
		factCheck = NewGoogleFactCheck(cfg.GoogleFactCheckAPIKey)
		Logger().Info("fact check lookups enabled")
	}

	var verifier *WebVerifier
	if cfg.EnableWebVerify {
		verifier = NewWebVerifier(cfg.UserAgentString, cfg.MaxScrapeResults,
			time.Duration(cfg.ScrapeTimeoutSeconds)*time.Second)
	}

	engine := NewEngine(NewLexiconSentiment(), oracle, factCheck, verifier)
	return engine, store, nil
}
