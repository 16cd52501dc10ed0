package config

import (
	"flag"
	"os"

	"github.com/gesan-dev/backoffice-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the identity service (default from Config)
//	-e string   organizational email domain (default from Config)
//	-d string   local database file (default from Config)
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the identity service")
	fs.StringVar(&cfg.EmailDomain, "e", cfg.EmailDomain, "organizational email domain")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
