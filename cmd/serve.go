package cmd

import (
	"fmt"

	"github.com/intelligrit/listnorm/internal/catalog"
	"github.com/intelligrit/listnorm/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run catalog as a status API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		cat, err := catalog.New(dataDir)
		if err != nil {
			return err
		}
		defer cat.Close()

		srv := &web.Server{
			Catalog: cat,
			Addr:    fmt.Sprintf("%s:%d", serveHost, servePort),
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
