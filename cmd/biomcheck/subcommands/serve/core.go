//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package serve

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/biocore/biomcheck/internal/logging"
	"github.com/biocore/biomcheck/pkg/biom"
	"github.com/biocore/biomcheck/pkg/core/config"
	"github.com/biocore/biomcheck/pkg/service"
)

var logger = logging.GetLogger("biomcheck")

// Execute runs the serve command, starting the HTTP validation service.
// It shuts down gracefully on interrupt signals.
func Execute(ctx context.Context, cmd *cli.Command) error {
	if err := config.Load(); err != nil {
		return err
	}

	port := int(cmd.Int("port"))
	if port == 0 {
		port = config.VConfig.GetInt(config.ServePort)
	}

	validator := biom.New(biom.Config{
		FormatVersion: config.VConfig.GetString(config.FormatVersion),
		Detailed:      config.VConfig.GetBool(config.DetailedReport),
	})

	server, err := service.CreateServer(validator, port)
	if err != nil {
		return err
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("Shutting down server...")

	if err := server.Stop(ctx); err != nil {
		return err
	}

	logger.Info("Server exited gracefully.")
	return nil
}
