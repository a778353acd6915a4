package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_BASE_URL", "VITE_API_BASE_URL", "REACT_APP_API_BASE_URL", "CURRENCY", "STORE_BACKEND", "PRICE_UPDATE_MODE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, "usd", cfg.Payment.Currency)
	require.Equal(t, StoreMemory, cfg.Store.Backend)
	require.Equal(t, PriceModeLastWriteWins, cfg.PriceMode)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		opts []Option
		want string
	}{
		{
			name: "fallback_key_used_when_primary_empty",
			env:  map[string]string{"API_BASE_URL": "", "VITE_API_BASE_URL": "", "REACT_APP_API_BASE_URL": "http://react:1"},
			want: "http://react:1",
		},
		{
			name: "primary_key_wins_over_fallback",
			env:  map[string]string{"API_BASE_URL": "http://primary:1", "VITE_API_BASE_URL": "http://vite:1", "REACT_APP_API_BASE_URL": "http://react:1"},
			want: "http://primary:1",
		},
		{
			name: "override_wins_over_environment",
			env:  map[string]string{"API_BASE_URL": "http://primary:1"},
			opts: []Option{WithAPIBaseURL("http://override:1")},
			want: "http://override:1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(tc.opts...)
			require.NoError(t, err)
			require.Equal(t, tc.want, cfg.APIBaseURL)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown_backend", env: map[string]string{"STORE_BACKEND": "firestore"}},
		{name: "unknown_transport", env: map[string]string{"EVENT_TRANSPORT": "sqs"}},
		{name: "unknown_price_mode", env: map[string]string{"PRICE_UPDATE_MODE": "highest"}},
		{name: "bad_port", env: map[string]string{"PORT": "http"}},
		{name: "bad_shutdown_timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestStoreCfg_DSN(t *testing.T) {
	s := StoreCfg{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "m", SSLMode: "disable"}
	require.Equal(t, "postgres://u:p@db:5432/m?sslmode=disable", s.DSN())
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a:1", "b:2"}, splitList(" a:1, ,b:2 "))
	require.Nil(t, splitList(""))
}
