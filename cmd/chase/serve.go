package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chase SSH server",
	Long: `Start an SSH server where every connection gets its own menu and runs.
All users share the server's run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.chase/host_key

Examples:
  chase serve
  chase serve --ssh :2222 --difficulty hard
  chase serve --host-key ./host_key --db ./runs.db

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.Game = runtimeConfig()
	cfg.Logger = logger.WithPrefix("chase-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p <port>")
	return server.ListenAndServe()
}
