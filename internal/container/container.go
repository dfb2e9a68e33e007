// Package container wires the application together with samber/do. Each
// concern registers its services through a *Package function so the server
// entrypoint stays declarative.
package container

import "fmt"

// Options holds the runtime configuration, bound to flags and environment
// variables by humacli.
type Options struct {
	Port         int    `default:"3000"    help:"Port to listen on"                                          short:"p"`
	BaseURL      string `default:""        help:"Public base URL for short links (default http://localhost:<port>)"`
	CodeLength   int    `default:"6"       help:"Length of generated shortcodes"                             short:"c"`
	Store        string `default:"memory"  help:"Storage backend: memory, redis, or postgres"`
	RedisAddr    string `default:"localhost:6379" help:"Redis server address"                                short:"r"`
	PostgresDSN  string `default:""        help:"PostgreSQL connection string"`
	Geo          string `default:"US"      help:"Geography value recorded on clicks"`
	LogSinkURL   string `default:"http://20.244.56.144/evaluation-service/logs" help:"Remote log sink endpoint"`
	LogSinkToken string `default:""        help:"Bearer token for the remote log sink"`
	LogFormat    string `default:"console" help:"Local log format: console or json"`
}

// ResolvedBaseURL returns the configured base URL or the localhost default.
func (o *Options) ResolvedBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}
