// Command amrburden serves the AMR burden prediction API and web UI.
// Usage: go run . [-config config.yaml] [-listen :8080]
package main

import (
	"flag"
	"log"

	"github.com/resistlab/amrburden/internal/app"
	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	listenAddr := flag.String("listen", "", "listen address, overrides config")
	flag.Parse()

	appCfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *listenAddr != "" {
		appCfg.ListenAddr = *listenAddr
	}

	logger := logging.NewStdoutLogger("amrburden")

	srv, err := server.NewServer(server.Config{
		ListenAddr: appCfg.ListenAddr,
		AppConfig:  appCfg,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("starting server: %v", err)
	}
	defer srv.Close()

	httpSrv := srv.HTTPServer()
	logger.Info("listening", logging.Field{Key: "addr", Value: httpSrv.Addr})
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
