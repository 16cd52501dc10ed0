package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gesan-dev/backoffice-cli/internal/flagx"
	"github.com/gesan-dev/backoffice-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be specified either as strings like "120s"
// or as integer nanoseconds. Parsed values are copied into the runtime
// Config; absent fields leave the current value untouched.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	EmailDomain        string         `json:"email_domain"`
	DatabaseDSN        string         `json:"database_dsn"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	ResendCooldown     timex.Duration `json:"resend_cooldown"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. When no file is named the function is a no-op; read and
// unmarshal errors panic (caller may recover).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.EmailDomain != "" {
		cfg.EmailDomain = jc.EmailDomain
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ResendCooldown.Duration != 0 {
		cfg.ResendCooldown = time.Duration(jc.ResendCooldown.Duration)
	}
}
