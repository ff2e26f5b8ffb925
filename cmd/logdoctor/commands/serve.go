package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/utils/logger"
	"github.com/ftcdoctor/logdoctor/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the diagnosis HTTP service",
	Long: `Start the HTTP server: POST a logcat capture to /api/v1/analyze and get
the JSON verdict back. Also exposes /healthz and Prometheus /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if servePort > 0 {
			cfg.Web.Port = servePort
		}
		log := logger.Get(cmd.Context())

		srv, err := web.NewServer(cfg, log)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Infof("🛑 Received %s, shutting down", sig)
			return srv.Stop()
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
	RootCmd.AddCommand(serveCmd)
}
