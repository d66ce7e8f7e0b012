package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		databaseDSN string
		latencyMS   int
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				databaseDSN: "slowtravel.db",
				latencyMS:   120,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"DATABASE_DSN": "/var/lib/slowtravel/env.db",
				"LATENCY_MS":   "250",
			},
			flags: []string{},
			want: want{
				databaseDSN: "/var/lib/slowtravel/env.db",
				latencyMS:   250,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-d", "flag.db",
				"-l", "50",
			},
			want: want{
				databaseDSN: "flag.db",
				latencyMS:   50,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"DATABASE_DSN": "env.db",
				"LATENCY_MS":   "300",
			},
			flags: []string{
				"-d", "flag.db",
				"-l", "50",
			},
			want: want{
				databaseDSN: "env.db",
				latencyMS:   300,
			},
		},
		{
			name: "empty flag keeps storage in memory",
			env:  map[string]string{},
			flags: []string{
				"-d", "",
			},
			want: want{
				databaseDSN: "",
				latencyMS:   120,
			},
		},
		{
			name: "negative latency clamps to zero",
			env:  map[string]string{},
			flags: []string{
				"-l", "-10",
			},
			want: want{
				databaseDSN: "slowtravel.db",
				latencyMS:   0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.databaseDSN, cfg.DatabaseDSN)
			assert.Equal(t, tt.want.latencyMS, cfg.LatencyMS)
		})
	}
}
