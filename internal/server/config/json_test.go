package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	body := `{
		"endpoint_addr": ":7000",
		"secret_key": "json-secret",
		"token_validity_duration": "3h"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddr, ":7000")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.TokenValidityDuration, 3*time.Hour)
	// fields absent from the file keep their defaults
	assert.Equal(t, c.AllowedOrigin, "http://localhost:5173")
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddr, ":4000")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", in: `"5h"`, want: 5 * time.Hour},
		{name: "nanoseconds", in: `60000000000`, want: time.Minute},
		{name: "garbage", in: `"soon"`, wantErr: true},
		{name: "wrong type", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}
