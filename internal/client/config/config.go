package config

import "time"

// Config holds runtime settings for the back-office console.
//
// Fields:
//   - ServerEndpointAddr: base URL of the identity service.
//   - EmailDomain: organizational domain the login/signup forms accept.
//   - DatabaseDSN: path of the local sqlite database.
//   - RequestTimeout: per-request HTTP timeout.
//   - ResendCooldown: default wait between verification-code resends, used
//     when the server gives no retry_after advice.
type Config struct {
	ServerEndpointAddr string
	EmailDomain        string
	DatabaseDSN        string
	RequestTimeout     time.Duration
	ResendCooldown     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.EmailDomain = "gesan.it"
	c.DatabaseDSN = "console.db"
	c.RequestTimeout = 10 * time.Second
	c.ResendCooldown = 120 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
