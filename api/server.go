package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/invites"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/tokens"
	"go.uber.org/zap"
)

type Server struct {
	server *http.Server
	log    *zap.Logger
}

func NewServer(
	cfg *config.Configuration,
	logger *zap.Logger,
	issuer *tokens.TokenIssuer,
	store *db.DataStore,
	inviteService *invites.Service,
	userService *manage.UserService,
	restaurantService *manage.RestaurantService,
	taskService *manage.TaskService,
	resourceService *manage.ResourceService,
	feedbackService *manage.FeedbackService,
	logService *manage.LogService) (*Server, error) {
	api, err := compose(logger.Named("api"),
		cfg,
		issuer,
		store,
		inviteService,
		userService,
		restaurantService,
		taskService,
		resourceService,
		feedbackService,
		logService)
	if err != nil {
		return nil, err
	}
	bind := net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
	srv := http.Server{
		Addr:              bind,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{
		server: &srv,
		log:    logger,
	}, nil
}

// Start runs ListenAndServe on the http.Server with graceful shutdown.
func (srv *Server) Start() error {
	srv.log.Info("starting server")
	go func() {
		if err := srv.server.ListenAndServe(); err != http.ErrServerClosed {
			panic(err)
		}
	}()
	srv.log.Info("listening", zap.String("addr", srv.server.Addr))

	quit := make(chan os.Signal, 1)
	//nolint
	signal.Notify(quit, os.Interrupt)
	sig := <-quit
	srv.log.Info("shutting down", zap.Any("signal", sig))

	if err := srv.server.Shutdown(context.Background()); err != nil {
		srv.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	srv.log.Info("graceful shutdown completed")
	return nil
}
