package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Handler == nil {
				return fmt.Errorf("HTTP handler is not configured")
			}
			listen := addr
			if listen == "" {
				listen = app.Addr
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           app.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Printf("Listening on %s\n", listen)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides GOALGRID_ADDR)")
	return cmd
}
