package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		start       Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "30", "-q", "3", "-p", "4", "-o", "https://app.example", "-l", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:8080",
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				DatabaseTimeout:             3 * time.Second,
				HashConcurrency:             4,
				CORSOrigin:                  "https://app.example",
				LogLevel:                    "debug",
			},
		},
		{
			name:  "foreign flags are ignored and durations kept",
			start: Config{SecretKey: "keep", DatabaseTimeout: 1500 * time.Millisecond, AccessTokenValidityDuration: 90 * time.Second},
			args:  []string{"-c", "cfg.json", "-x", "1", "-s", "new"},
			expected: &Config{
				SecretKey:                   "new",
				DatabaseTimeout:             1500 * time.Millisecond,
				AccessTokenValidityDuration: 90 * time.Second,
			},
		},
		{
			name:        "bad int panics",
			args:        []string{"-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, &config))
		})
	}
}
