// Package main is the TalentSift CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/config"
	"github.com/talentsift/talentsift/internal/corpus"
	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/match"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/profile"
	"github.com/talentsift/talentsift/internal/resolve"
	"github.com/talentsift/talentsift/internal/server"
	"github.com/talentsift/talentsift/internal/vecindex"
	"github.com/talentsift/talentsift/internal/watcher"
	"github.com/talentsift/talentsift/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/talentsift/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "index":
		runIndex()
	case "search":
		runSearch()
	case "parse":
		runParse()
	case "version", "--version", "-v":
		fmt.Printf("talentsift version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: talentsift <command> [flags]

Commands:
  server    Start the HTTP API server
  index     Rebuild the vector index from the corpus directories
  search    Run a search against the corpus from the command line
  parse     Parse a resume artifact into a structured profile
  version   Print version
  help      Show this help`)
}

// components bundles everything the server and CLI commands share.
type components struct {
	Embedder embedding.Embedder
	Index    vecindex.Index
	Source   *corpus.Source
	Indexer  *corpus.Indexer
	Ranker   *match.Ranker
	Profiles *profile.Store
}

func (c *components) Close() {
	if c.Profiles != nil {
		_ = c.Profiles.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	var embedder embedding.Embedder
	switch cfg.Embedding.Provider {
	case "openai":
		e, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			CacheSize:  cfg.Embedding.CacheSize,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create embedder: %w", err)
		}
		embedder = e
	case "mock", "":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, mock)", cfg.Embedding.Provider)
	}

	index, err := vecindex.New(cfg.Index.Backend, cfg.Embedding.Dimensions,
		cfg.Index.RedisAddr, cfg.Index.RedisPassword, cfg.Index.IndexName)
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("create vector index: %w", err)
	}

	source := &corpus.Source{
		ResumesDir: cfg.Corpus.ResumesDir,
		NotesDir:   cfg.Corpus.NotesDir,
	}
	indexer := corpus.NewIndexer(source, embedder, index, logger)
	resolver := resolve.NewResolver(cfg.Corpus.OriginalsDir)
	ranker := match.NewRanker(embedder, index, resolver, logger)

	var profiles *profile.Store
	if cfg.Storage.DatabasePath != "" {
		profiles, err = profile.NewStore(cfg.Storage.DatabasePath)
		if err != nil {
			_ = index.Close()
			_ = embedder.Close()
			return nil, fmt.Errorf("open profile store: %w", err)
		}
	}

	return &components{
		Embedder: embedder,
		Index:    index,
		Source:   source,
		Indexer:  indexer,
		Ranker:   ranker,
		Profiles: profiles,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	startCtx, startCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	indexed, err := comps.Indexer.ReindexIfEmpty(startCtx)
	startCancel()
	if err != nil {
		logger.Fatal("Failed to index corpus", zap.Error(err))
	}
	if indexed > 0 {
		logger.Info("startup indexing complete", zap.Int("documents", indexed))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.Enabled {
		idx := comps.Indexer
		watchOpts := []watcher.Option{
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.New(
			[]string{cfg.Corpus.ResumesDir, cfg.Corpus.NotesDir},
			cfg.Watch.Extensions,
			func(path string) {
				if err := idx.IndexFile(context.Background(), path); err != nil {
					logger.Warn("watch index file failed", zap.String("path", path), zap.Error(err))
				}
			},
			func(path string) {
				if err := idx.RemoveFile(context.Background(), path); err != nil {
					logger.Warn("watch remove file failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(
		comps.Ranker,
		comps.Indexer,
		comps.Profiles,
		cfg.Corpus.OriginalsDir,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	count, err := comps.Indexer.Reindex(ctx)
	if err != nil {
		logger.Fatal("Indexing failed", zap.Error(err))
	}
	fmt.Printf("Indexed %d documents\n", count)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	mode := fs.String("mode", "general", "search mode: jd, skills, education, or general")
	minYears := fs.Int("min-years", 0, "minimum years of experience (skills mode)")
	includeNotes := fs.Bool("include-notes", false, "include interview notes (general mode)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: talentsift search [flags] <query>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	queryStr := strings.TrimSpace(strings.Join(fs.Args(), " "))

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := comps.Indexer.ReindexIfEmpty(ctx); err != nil {
		logger.Fatal("Failed to index corpus", zap.Error(err))
	}

	var response *models.SearchResponse
	switch *mode {
	case "jd":
		response, err = comps.Ranker.SearchJobDescription(ctx, models.JobDescriptionQuery{Text: queryStr})
	case "skills":
		skills := strings.Split(queryStr, ",")
		for i := range skills {
			skills[i] = strings.TrimSpace(skills[i])
		}
		response, err = comps.Ranker.SearchSkills(ctx, models.SkillQuery{Skills: skills, MinYears: *minYears})
	case "education":
		levels := strings.Split(queryStr, ",")
		for i := range levels {
			levels[i] = strings.TrimSpace(levels[i])
		}
		response, err = comps.Ranker.SearchEducation(ctx, models.EducationQuery{Levels: levels})
	case "general":
		response, err = comps.Ranker.SearchGeneral(ctx, models.GeneralQuery{Text: queryStr, IncludeNotes: *includeNotes})
	default:
		fmt.Printf("Unknown mode %q; use jd, skills, education, or general\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("Search failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(response)
}

func runParse() {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	save := fs.Bool("save", false, "save the parsed profile to the profile store")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: talentsift parse [flags] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	path := fs.Arg(0)

	parser := profile.NewParser(extract.NewExtractor())
	p, err := parser.Parse(path, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}

	if *save {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
		store, err := profile.NewStore(cfg.Storage.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open profile store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.Save(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save profile: %v\n", err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(p)
}
