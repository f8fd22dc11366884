package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"humordrop/api"
	"humordrop/client"
	"humordrop/config"
	"humordrop/notify"
	"humordrop/prompt"
	"humordrop/ranker"
	"humordrop/scoring"
	"humordrop/session"
	"humordrop/store"
)

func main() {
	// .env is optional; real env wins either way.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load("./config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setLogLevel(cfg.LogLevel)
	slog.Info("config loaded", "api_base_url", cfg.APIBaseURL, "poll_interval_secs", cfg.PollIntervalSec)

	st, err := store.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	sess, err := session.Restore(st)
	if err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second}
	rest := api.New(httpClient, cfg.APIBaseURL, sess)
	app := client.New(client.Deps{Auth: rest, Posts: rest, Users: rest}, sess, st)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.FetchTimeoutSec)*time.Second)
	defer cancel()

	if !sess.LoggedIn() {
		handle, password := os.Getenv("HUMORDROP_HANDLE"), os.Getenv("HUMORDROP_PASSWORD")
		if handle == "" || password == "" {
			slog.Error("no stored session; set HUMORDROP_HANDLE and HUMORDROP_PASSWORD to log in")
			os.Exit(1)
		}
		user, err := app.Login(ctx, handle, password)
		if err != nil {
			slog.Error("login failed", "error", err)
			os.Exit(1)
		}
		slog.Info("logged in", "handle", user.Handle)
	} else if user, ok := sess.User(); ok {
		slog.Info("session restored", "handle", user.Handle)
	}

	var gen prompt.Generator
	if cfg.GeminiAPIKey != "" {
		gen = prompt.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, httpClient)
	}
	fmt.Printf("Daily Humor Dose: %s\n\n", prompt.NewSource(gen).Daily(ctx))

	if err := app.Refresh(ctx); err != nil {
		slog.Error("failed to fetch feed", "error", err)
		os.Exit(1)
	}

	printFeed(app)
	printLeaderboard(app)

	poller, err := notify.NewPoller(time.Duration(cfg.PollIntervalSec)*time.Second, rest.UnreadCount)
	if err != nil {
		slog.Error("failed to create notification poller", "error", err)
		os.Exit(1)
	}
	if count, err := poller.Check(ctx); err != nil {
		slog.Warn("initial unread check failed", "error", err)
	} else if count > 0 {
		fmt.Printf("You have %d unread notifications.\n", count)
	}
	poller.Start()
	defer poller.Stop()
	slog.Info("notification polling started", "interval_secs", cfg.PollIntervalSec)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())
}

func setLogLevel(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func printFeed(app *client.Client) {
	hot := app.Feed(ranker.Options{Sort: ranker.SortHot})
	fmt.Println("Hot right now:")
	for i, p := range hot {
		if i >= 10 {
			break
		}
		handle := "Anonymous"
		if !p.IsAnonymous && p.Author != nil {
			handle = p.Author.Handle
		}
		fmt.Printf("%2d. [%s] %s — %s\n", i+1, p.Category, p.Text, handle)
	}
	fmt.Println()
}

func printLeaderboard(app *client.Client) {
	fmt.Println("The Hierarchy of Hilarity:")
	for i, e := range app.Leaderboard(scoring.TimeframeAll) {
		if i >= 10 {
			break
		}
		fmt.Printf("%2d. %s — %d aura (%s)\n", i+1, e.User.Handle, e.Score, e.Level)
	}
	fmt.Println()
}
