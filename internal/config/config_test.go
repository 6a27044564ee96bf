package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o600))
}

const testConfigHCL = `
canvas {
  host       = "https://file.instructure.com"
  token      = "file-token"
  timeout    = "10s"
  per_page   = 50
  tls_verify = false
}

server {
  transport = "http"
  addr      = "0.0.0.0:9000"
  path      = "/canvas"
}

datadog {
  enabled = true
  service = "canvas-mcp-test"
}
`

func TestLoad_EnvironmentOnly(t *testing.T) {
	cfg, err := Load(Options{
		Fs: afero.NewMemMapFs(),
		LookupEnv: envFrom(map[string]string{
			EnvHost:  "https://school.instructure.com/",
			EnvToken: "env-token",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://school.instructure.com", cfg.Canvas.Host)
	assert.Equal(t, "env-token", cfg.Canvas.Token)
	assert.Equal(t, "30s", cfg.Canvas.Timeout)
	assert.Equal(t, 100, cfg.Canvas.PerPage)
	assert.Nil(t, cfg.Canvas.TLSVerify)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, "/mcp", cfg.Server.Path)
	assert.False(t, cfg.Datadog.Enabled)
	assert.Equal(t, "canvas-mcp", cfg.Datadog.Service)
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "canvas-mcp.hcl", testConfigHCL)

	cfg, err := Load(Options{
		ConfigFile: "canvas-mcp.hcl",
		Fs:         fs,
		LookupEnv:  envFrom(nil),
		Logger:     hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://file.instructure.com", cfg.Canvas.Host)
	assert.Equal(t, "file-token", cfg.Canvas.Token)
	assert.Equal(t, 50, cfg.Canvas.PerPage)
	require.NotNil(t, cfg.Canvas.TLSVerify)
	assert.False(t, *cfg.Canvas.TLSVerify)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "/canvas", cfg.Server.Path)
	assert.True(t, cfg.Datadog.Enabled)
	assert.Equal(t, "canvas-mcp-test", cfg.Datadog.Service)

	cc := cfg.CanvasConfig(hclog.NewNullLogger())
	assert.Equal(t, "https://file.instructure.com", cc.BaseURL)
	assert.Equal(t, 10*time.Second, cc.Timeout)
	assert.Equal(t, 50, cc.PerPage)
	assert.True(t, cc.Tracing)
	require.NoError(t, cc.Validate())
}

func TestConfig_JSONOmitsToken(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "canvas-mcp.hcl", testConfigHCL)

	cfg, err := Load(Options{ConfigFile: "canvas-mcp.hcl", Fs: fs, LookupEnv: envFrom(nil)})
	require.NoError(t, err)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "file-token")
	assert.NotContains(t, string(out), `"token"`)
	assert.Contains(t, string(out), `"host":"https://file.instructure.com"`)
	assert.Contains(t, string(out), `"tls_verify":false`)
	assert.Contains(t, string(out), `"addr":"0.0.0.0:9000"`)
}

func TestLoad_Precedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "canvas-mcp.hcl", testConfigHCL)
	writeFile(t, fs, ".env", "CANVAS_HOST=dotenv.instructure.com\nCANVAS_TOKEN=dotenv-token\n")

	// The dotenv file overrides the configuration file.
	cfg, err := Load(Options{
		ConfigFile: "canvas-mcp.hcl",
		Fs:         fs,
		LookupEnv:  envFrom(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.instructure.com", cfg.Canvas.Host)
	assert.Equal(t, "dotenv-token", cfg.Canvas.Token)

	// The environment overrides both; an empty variable does not count.
	cfg, err = Load(Options{
		ConfigFile: "canvas-mcp.hcl",
		Fs:         fs,
		LookupEnv: envFrom(map[string]string{
			EnvHost:  "https://env.instructure.com",
			EnvToken: "",
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://env.instructure.com", cfg.Canvas.Host)
	assert.Equal(t, "dotenv-token", cfg.Canvas.Token)

	// Values not set by the environment keep the file's values.
	assert.Equal(t, 50, cfg.Canvas.PerPage)
}

func TestLoad_CustomEnvFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "secrets.env", "# Canvas credentials\nexport CANVAS_HOST=\"https://quoted.instructure.com\"\nCANVAS_TOKEN='abc 123'\n")

	cfg, err := Load(Options{
		EnvFile:   "secrets.env",
		Fs:        fs,
		LookupEnv: envFrom(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://quoted.instructure.com", cfg.Canvas.Host)
	assert.Equal(t, "abc 123", cfg.Canvas.Token)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		opts    Options
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing host",
			env:     map[string]string{EnvToken: "token"},
			wantErr: "CANVAS_HOST",
		},
		{
			name:    "missing token",
			env:     map[string]string{EnvHost: "https://school.instructure.com"},
			wantErr: "CANVAS_TOKEN",
		},
		{
			name:    "missing config file",
			opts:    Options{ConfigFile: "nope.hcl"},
			wantErr: "configuration file not found: nope.hcl",
		},
		{
			name:    "invalid hcl",
			files:   map[string]string{"bad.hcl": "canvas {"},
			opts:    Options{ConfigFile: "bad.hcl"},
			wantErr: "failed to parse configuration file",
		},
		{
			name:    "unknown transport",
			files:   map[string]string{"c.hcl": `server { transport = "grpc" }`},
			opts:    Options{ConfigFile: "c.hcl"},
			env:     map[string]string{EnvHost: "h", EnvToken: "t"},
			wantErr: "transport",
		},
		{
			name:    "invalid timeout",
			files:   map[string]string{"c.hcl": `canvas { timeout = "soon" }`},
			opts:    Options{ConfigFile: "c.hcl"},
			env:     map[string]string{EnvHost: "h", EnvToken: "t"},
			wantErr: "must be a duration",
		},
		{
			name:    "page size out of range",
			files:   map[string]string{"c.hcl": `canvas { per_page = 500 }`},
			opts:    Options{ConfigFile: "c.hcl"},
			env:     map[string]string{EnvHost: "h", EnvToken: "t"},
			wantErr: "per_page",
		},
		{
			name:    "relative path",
			files:   map[string]string{"c.hcl": `server { path = "mcp" }`},
			opts:    Options{ConfigFile: "c.hcl"},
			env:     map[string]string{EnvHost: "h", EnvToken: "t"},
			wantErr: "must start with /",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for name, content := range tt.files {
				writeFile(t, fs, name, content)
			}

			opts := tt.opts
			opts.Fs = fs
			opts.LookupEnv = envFrom(tt.env)

			_, err := Load(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "https://school.instructure.com", normalizeHost("school.instructure.com"))
	assert.Equal(t, "http://localhost:3000", normalizeHost(" http://localhost:3000/ "))
	assert.Equal(t, "", normalizeHost(""))
}
