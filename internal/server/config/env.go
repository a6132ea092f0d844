package config

import (
	"os"

	"github.com/caarlos0/env/v11"
)

// portEnv carries the PORT shorthand that hosting platforms set.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv overlays variables from environ onto config. A nil environ means
// the process environment. Unset variables leave the field as it is. PORT is
// honoured as ":PORT" for the REST endpoint unless HTTP_ADDRESS is also set.
// A value that cannot be parsed panics.
func parseEnv(config *Config, environ map[string]string) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	opts := env.Options{Environment: environ}

	if err := env.ParseWithOptions(config, opts); err != nil {
		panic(err)
	}

	if _, ok := environ["HTTP_ADDRESS"]; ok {
		return
	}

	var p portEnv
	if err := env.ParseWithOptions(&p, opts); err != nil {
		panic(err)
	}
	if p.Port != "" {
		config.EndpointAddrHTTP = ":" + p.Port
	}
}
