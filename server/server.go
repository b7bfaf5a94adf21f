package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/trackdb"
	"github.com/cyclopcam/logs"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

type Server struct {
	Log logs.Log

	signalIn   chan os.Signal
	httpServer *http.Server
	httpRouter *httprouter.Router
	cfg        Config
	db         *trackdb.TrackDB
	auth       *auth.AuthServer
}

func NewServer(configFile string) (*Server, error) {
	cfg := Config{}
	if cfgB, err := os.ReadFile(configFile); err != nil {
		return nil, err
	} else {
		if err := json.Unmarshal(cfgB, &cfg); err != nil {
			return nil, fmt.Errorf("Error parsing config file %v: %w", configFile, err)
		}
	}
	logger, err := logs.NewLog()
	if err != nil {
		return nil, err
	}
	return NewServerFromConfig(logger, cfg)
}

func NewServerFromConfig(logger logs.Log, cfg Config) (*Server, error) {
	db, err := trackdb.NewTrackDB(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	authServer := auth.NewAuthServer(db.DB, logger, auth.NewDBSessionStore(db.DB), cfg.HTTP.Production)
	s := &Server{
		Log:  logger,
		cfg:  cfg,
		db:   db,
		auth: authServer,
	}
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Addr returns the configured listen address, defaulting to ":8080".
func (s *Server) Addr() string {
	if s.cfg.HTTP.Addr == "" {
		// SYNC-SERVER-PORT
		return ":8080"
	}
	return s.cfg.HTTP.Addr
}

// addr example: ":8080"
func (s *Server) ListenHTTP(addr string) error {
	s.Log.Infof("Listening on %v", addr)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.corsHandler(),
	}
	return s.httpServer.ListenAndServe()
}

// The front end lives on a different origin, so every browser request is
// cross-origin and carries the session cookie.
func (s *Server) corsHandler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})
	return c.Handler(s.httpRouter)
}

func (s *Server) ListenForKillSignals() {
	s.Log.Infof("ListenForKillSignals starting")
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if ok {
			s.Log.Infof("Received OS signal '%v'. ListenForKillSignals will exit after shutdown", sig.String())
			s.Shutdown()
		} else {
			s.Log.Infof("signalIn closed. ListenForKillSignals will exit now")
		}
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	signal.Stop(s.signalIn)
	close(s.signalIn)
	s.Log.Infof("Closing HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	err := s.httpServer.Shutdown(ctx)
	defer cancel()
	if err != nil {
		s.Log.Warnf("Shutdown complete, with error: %v", err)
	} else {
		s.Log.Infof("Shutdown complete")
	}
	s.Log.Close()
}
