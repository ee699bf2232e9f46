package server

import (
	"github.com/resistlab/amrburden/internal/app"
	"github.com/resistlab/amrburden/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig carries the scoring/artifact/storage configuration. Nil
	// means app.DefaultConfig().
	AppConfig *app.Config

	// Logger defaults to a JSON-lines stdout logger when nil.
	Logger logging.Logger
}
