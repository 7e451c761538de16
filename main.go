package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/KNICEX/watchlist-agent/internal/repo"
	"github.com/KNICEX/watchlist-agent/internal/schedule"
	"github.com/KNICEX/watchlist-agent/internal/service/marketdata"
	mdbinance "github.com/KNICEX/watchlist-agent/internal/service/marketdata/binance"
	"github.com/KNICEX/watchlist-agent/internal/service/marketdata/yahoo"
	"github.com/KNICEX/watchlist-agent/internal/service/notification/smtp"
	"github.com/KNICEX/watchlist-agent/internal/service/notification/webhook"
	"github.com/KNICEX/watchlist-agent/internal/service/watch"
	"github.com/KNICEX/watchlist-agent/internal/store"
	"github.com/KNICEX/watchlist-agent/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	viper.SetEnvPrefix("WATCHAGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}

}

func main() {
	initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	auditRepo := repo.NewNotificationRepo(db)

	dataDir := viper.GetString("data.dir")
	if dataDir == "" {
		dataDir = "./data"
	}

	yahooSvc := yahoo.NewService()
	binanceSvc := mdbinance.NewService(ioc.InitBinanceCli())
	router := marketdata.NewRouter(yahooSvc, binanceSvc)

	opts := []watch.Option{
		watch.WithNotifier(initNotifier()),
		watch.WithAudit(auditRepo),
		watch.WithDefaultRecipient(viper.GetString("notify.default_to")),
	}
	if d := viper.GetDuration("watch.cooldown"); d > 0 {
		opts = append(opts, watch.WithCooldown(d))
	}
	if d := viper.GetDuration("quote.timeout"); d > 0 {
		opts = append(opts, watch.WithQuoteTimeout(d))
	}
	if d := viper.GetDuration("history.timeout"); d > 0 {
		opts = append(opts, watch.WithHistoryTimeout(d))
	}
	if viper.GetBool("watch.history") {
		opts = append(opts, watch.WithHistory(router, store.NewHistoryWriter(dataDir)))
	}
	engine := watch.NewEngine(router, opts...)

	task := watch.NewTask(engine,
		store.NewWatchlistStore(filepath.Join(dataDir, "watchlist.json")),
		store.NewLedgerStore(filepath.Join(dataDir, "alerts_log.json")),
		watch.WithTaskAudit(auditRepo),
	)

	if viper.GetString("watch.mode") == "once" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute*10)
		defer cancel()
		if err := task.Run(ctx); err != nil {
			panic(err)
		}
		return
	}

	interval := viper.GetDuration("watch.interval")
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting watch loop", "interval", interval)
	runner := schedule.NewIntervalRunner(interval)
	if err := runner.Run(ctx, task); err != nil {
		slog.Info("shutting down", "reason", err)
	}
}

func initNotifier() watch.Notifier {
	switch viper.GetString("notify.channel") {
	case "email":
		dialer, cfg := ioc.InitMailer()
		return watch.NewEmailNotifier(smtp.NewService(dialer, cfg.From))
	case "webhook":
		return watch.NewWebhookNotifier(webhook.NewService(), viper.GetString("notify.webhook_url"))
	default:
		return watch.NewConsoleNotifier()
	}
}
