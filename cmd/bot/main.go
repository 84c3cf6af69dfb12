package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	telegramAdapter "github.com/fellowfy-fy/SnapCeilingBot/internal/adapter/telegram"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/config"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/infra/llm"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/infra/memory"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/infra/metrics"
	sqliteRepo "github.com/fellowfy-fy/SnapCeilingBot/internal/infra/sqlite"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
	srv := startHTTP(cfg.HTTPAddr, logger)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка создания бота: %v", err)
	}
	bot.Debug = false
	logger.Info("authorized", "username", bot.Self.UserName)

	// Воронка: SQLite, если задан DSN, иначе в памяти
	var funnelRepo usecase.FunnelRepository = memory.NewFunnelRepo()
	if cfg.FunnelDSN != "" {
		repo, err := sqliteRepo.NewFunnelRepo(cfg.FunnelDSN)
		if err != nil {
			log.Fatalf("funnel sqlite init error: %v", err)
		}
		defer repo.Close()
		funnelRepo = repo
	}
	if cfg.LeadsChatID == "" {
		logger.Warn("LEADS_CHAT_ID is empty, confirmed leads will not be forwarded")
	}

	sender := telegramAdapter.NewSender(bot)
	gateway := usecase.NewLeadGateway(sender, logger, recorder)
	form := usecase.NewLeadForm(gateway, cfg.LeadsChatID)
	assistant := llm.NewClient(cfg.HFToken, cfg.LLMBaseURL, cfg.HFModelID)
	consultant := usecase.NewConsultant(assistant, logger, recorder)
	consultant.SetTimeout(cfg.LLMTimeout)

	controller := usecase.NewController(form, memory.NewSessionRepo(), sender, consultant, logger)
	controller.SetFunnel(usecase.NewFunnelUsecase(funnelRepo), cfg.AdminIDs)
	controller.SetMetrics(recorder)

	telegramAdapter.NewHandler(bot, controller, logger).Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
}

// startHTTP поднимает health check и /metrics для Prometheus.
func startHTTP(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
		}
	}()
	return srv
}
