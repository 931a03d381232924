package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/mosescsmith/cbb/internal/app"
	"github.com/mosescsmith/cbb/internal/config"
	"github.com/mosescsmith/cbb/internal/platform/logging"
)

func main() {
	var dateArg string
	flag.StringVar(&dateArg, "date", "", "scoreboard date to warm, YYYY-MM-DD (default today UTC)")
	flag.Parse()

	date := time.Now().UTC()
	if dateArg != "" {
		parsed, err := time.Parse("2006-01-02", dateArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q: %v\n", dateArg, err)
			os.Exit(2)
		}
		date = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	svcs, err := app.NewServices(cfg, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build app: %v\n", err)
		os.Exit(1)
	}
	defer svcs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := svcs.Preload.PreloadDay(ctx, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preload %s: %v\n", date.Format("2006-01-02"), err)
		os.Exit(1)
	}

	out, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
