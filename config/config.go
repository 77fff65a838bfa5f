package config

import (
	"strings"

	"github.com/usvc/go-config"

	"github.com/kndndrj/gqlbee/core"
)

// Keys shared by all commands
const (
	KeyFormat          = "format"
	KeyOutput          = "output"
	KeyCurrencyMarkers = "currency-markers"
	KeyDateLayout      = "date-layout"
	KeyTimeLayout      = "time-layout"
	KeyTimezone        = "timezone"
	KeyLogLevel        = "log-level"
	KeyLogFilePath     = "log-file-path"

	KeyInput = "input"

	KeyEndpoint    = "endpoint"
	KeyToken       = "token"
	KeyHTTPTimeout = "http-timeout"
	KeyConcurrency = "concurrency"
)

func common() config.Map {
	return config.Map{
		KeyFormat: &config.String{
			Default:   "table",
			Usage:     "output format, support table|csv|excel|json|html|markdown",
			Shorthand: "f",
		},
		KeyOutput: &config.String{
			Default:   "",
			Usage:     "output file or directory, default to stdout",
			Shorthand: "o",
		},
		KeyCurrencyMarkers: &config.String{
			Default: strings.Join(core.DefaultCurrencyMarkers, ","),
			Usage:   "comma separated field name parts that mark a number as currency",
		},
		KeyDateLayout: &config.String{
			Default: core.DefaultDateLayout,
			Usage:   "go layout of the date part of formatted date-times",
		},
		KeyTimeLayout: &config.String{
			Default: core.DefaultTimeLayout,
			Usage:   "go layout of the time part of formatted date-times",
		},
		KeyTimezone: &config.String{
			Default: "",
			Usage:   "IANA zone used to display date-times, default to the local zone",
		},
		KeyLogLevel: &config.String{
			Default: "warn",
			Usage:   "level of log, support panic|fatal|error|warn|info|debug|trace",
		},
		KeyLogFilePath: &config.String{
			Default: "",
			Usage:   "log file path, logs go only to stderr if empty",
		},
	}
}

// Flatten returns the flags of the flatten command
func Flatten() config.Map {
	conf := common()
	conf[KeyInput] = &config.String{
		Default:   "-",
		Usage:     "file with a GraphQL response, - for stdin",
		Shorthand: "i",
	}
	return conf
}

// Query returns the flags of the query command.
// Queries themselves are repeatable and are not part of the map.
func Query() config.Map {
	conf := common()
	conf[KeyEndpoint] = &config.String{
		Default:   "",
		Usage:     `GraphQL endpoint url, may contain templates like {{ env "VAR" }}`,
		Shorthand: "e",
	}
	conf[KeyToken] = &config.String{
		Default: "",
		Usage:   `bearer token, may contain templates like {{ exec "az account get-access-token --query accessToken -o tsv" }}`,
	}
	conf[KeyHTTPTimeout] = &config.Int{
		Default: 30,
		Usage:   "http timeout in seconds",
	}
	conf[KeyConcurrency] = &config.Int{
		Default:   4,
		Usage:     "maximum number of queries in flight",
		Shorthand: "c",
	}
	return conf
}
