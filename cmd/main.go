package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/sympathy-server/internal/api/grpc/context"
	"github.com/dtroode/sympathy-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/sympathy-server/internal/api/grpc/server"
	"github.com/dtroode/sympathy-server/internal/api/ops"
	"github.com/dtroode/sympathy-server/internal/config"
	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
	"github.com/dtroode/sympathy-server/internal/notify"
	"github.com/dtroode/sympathy-server/internal/repository/memory"
	"github.com/dtroode/sympathy-server/internal/repository/postgres"
	"github.com/dtroode/sympathy-server/internal/server"
	"github.com/dtroode/sympathy-server/internal/service"
	storage "github.com/dtroode/sympathy-server/internal/storage/minio"
	"github.com/dtroode/sympathy-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	profiles model.ProfileStore
	likes    model.LikeStore
	tokens   model.RefreshTokenStore
	pinger   ops.Pinger
	close    func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer func() { _ = st.close() }()

	readiness := map[string]ops.Pinger{"database": st.pinger}

	var photos model.PhotoStore
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewFromConfig(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		photos = service.NewPhotos(storageClient, cfg.Photo.WatermarkText, cfg.Photo.MaxBytes, logger)
		readiness["storage"] = storageClient
	} else {
		logger.Warn("object storage disabled, registrations with photos will be rejected")
	}

	var notifier model.MatchNotifier = notify.NewLog(logger)
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.Timeout, logger)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokenService := service.NewTokenService(tokenManager, st.tokens, cfg.JWT.RefreshTTL, logger)
	candidates := service.NewCachedCandidates(
		service.NewCandidates(st.profiles, logger),
		cfg.Cache.Capacity,
		cfg.Cache.TTL,
		logger,
	)
	authService := service.NewAuth(st.profiles, candidates, photos, tokenService, logger)
	matchService := service.NewMatch(st.profiles, st.likes, notifier, cfg.Match.DailyLikeLimit, logger)

	r := router.New(router.Services{
		Auth:       authService,
		Profiles:   authService,
		Tokens:     tokenService,
		Candidates: candidates,
		Matches:    matchService,
	}, grpcctx.NewManager(), cfg.GRPC.RequestTimeout, logger)
	gs := r.Register()
	reflection.Register(gs)

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	// The operations server always listens in plain HTTP.
	servers := []struct {
		srv   model.Server
		layer model.SecurityLayer
	}{
		{srv: grpcServer.NewGRPCServer(gs, fmt.Sprintf(":%s", cfg.GRPC.Port)), layer: sl},
		{srv: ops.NewServer(ops.NewHandler(readiness, logger).Routes(), fmt.Sprintf(":%s", cfg.HTTP.Port)), layer: server.NewPlainListener()},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, layer model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(layer); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Database) (stores, error) {
	if cfg.Driver == "memory" {
		store := memory.NewStore()
		return stores{
			profiles: store.Profiles(),
			likes:    store.Likes(),
			tokens:   store.RefreshTokens(),
			pinger:   store,
			close:    store.Close,
		}, nil
	}

	db, err := postgres.NewConection(ctx, cfg.DSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		profiles: postgres.NewProfileRepository(db),
		likes:    postgres.NewLikeRepository(db),
		tokens:   postgres.NewRefreshTokenRepository(db),
		pinger:   db,
		close:    db.Close,
	}, nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
