package main

import (
	"net/http"
	"os"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/config"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/server"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	s, err := server.NewServer(cfg, log)
	if err != nil {
		log.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	addr := ":" + cfg.Port
	log.Info("jabir server listening", "addr", addr)
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
