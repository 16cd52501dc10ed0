// Package config loads runtime configuration for the back-office console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the identity service
//	-e string   organizational email domain accepted by the forms
//	-d string   path of the local database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "120s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "https://backoffice.gesan.it",
//	  "email_domain": "gesan.it",
//	  "database_dsn": "console.db",
//	  "request_timeout": "10s",
//	  "resend_cooldown": "120s"
//	}
package config
