package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.Init(level)
	} else if cfg.Server.Mode == gin.ReleaseMode {
		logger.Init("info")
	} else {
		logger.Init("debug")
	}

	svc := bootstrap(cfg)
	defer svc.shutdown()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, cfg, svc)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
