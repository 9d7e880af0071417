package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/config"
	"github.com/Astemirdum/bookstore-service/internal/handler"
	"github.com/Astemirdum/bookstore-service/internal/repository"
	"github.com/Astemirdum/bookstore-service/internal/server"
	"github.com/Astemirdum/bookstore-service/internal/service"
	"github.com/Astemirdum/bookstore-service/migrations"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
	"github.com/Astemirdum/bookstore-service/pkg/kafka"
	"github.com/Astemirdum/bookstore-service/pkg/logger"
	"github.com/Astemirdum/bookstore-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "bookstore")
	if cfg.JWTKey != "" {
		auth.JWTKey = []byte(cfg.JWTKey)
	}

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	bookRepo := repository.NewBookRepository(db, log)
	genreRepo := repository.NewGenreRepository(db, log)
	commentRepo := repository.NewCommentRepository(db, log)
	ratingRepo := repository.NewRatingRepository(db, log)
	personRepo := repository.NewPersonRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	bookSvc := service.NewBookService(bookRepo, genreRepo, commentRepo, ratingRepo, personRepo, log)
	personSvc := service.NewPersonService(personRepo, log)
	authSvc := service.NewAuthService(userRepo, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}

	h := handler.New(bookSvc, personSvc, authSvc, handler.NewEnqueuer(producer), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
