package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "memory://", "-n", "acc", "-u", "members",
			"-s", "secret", "-i", "issuer", "-o", "audience", "-t", "30",
		}, expectPanic: false,
			expected: &Config{
				Addr:                  "127.0.0.1:9090",
				DatabaseDSN:           "memory://",
				DatabaseName:          "acc",
				UserCollection:        "members",
				SecretKey:             "secret",
				TokenIssuer:           "issuer",
				TokenAudience:         "audience",
				TokenValidityDuration: 30 * time.Minute,
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
