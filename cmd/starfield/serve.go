package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-starfield/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagRate        float64
	flagBurst       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the starfield SSH server",
	Long: `Start an SSH server that gives every connection its own preview.

Each SSH connection gets a preset menu and an independent starfield.
New sessions are rate limited per remote host.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.starfield/host_key

Examples:
  starfield serve                           # Listen on :23235 with auto-generated key
  starfield serve --ssh :2222               # Listen on port 2222
  starfield serve --host-key ./my_host_key  # Use specific host key
  starfield serve --rate 0                  # Disable the session rate limit

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().Float64Var(&flagRate, "rate", defaults.SessionsPerMinute, "New sessions per minute per host (0 = unlimited)")
	serveCmd.Flags().IntVar(&flagBurst, "burst", defaults.Burst, "Sessions a host may open at once")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:           flagSSHAddr,
		HostKeyPath:       flagHostKey,
		IdleTimeout:       time.Duration(flagIdleTimeout) * time.Minute,
		SessionsPerMinute: flagRate,
		Burst:             flagBurst,
		Seed:              flagSeed,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting starfield SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
