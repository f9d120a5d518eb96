package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinos/wallet-ui-tests/config"
)

func TestFlagsOverrideConfig(t *testing.T) {
	var params commandParams
	v := config.NewViper()
	cmd, err := newRootCommand(&bytes.Buffer{})
	require.NoError(t, err)
	cmd.ResetFlags()
	require.NoError(t, params.addFlags(cmd, v))

	require.NoError(t, cmd.ParseFlags([]string{
		"--base-url", "http://localhost:8085",
		"--driver", "rod",
		"--headless",
		"--run", "homepage",
		"--skip", "register",
		"--debug",
	}))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8085/", cfg.BaseURL)
	assert.Equal(t, "rod", cfg.Browser.Driver)
	assert.True(t, cfg.Browser.Headless)
	assert.True(t, params.debug)
	assert.True(t, params.filters.MustMatch.AnyMatch("Can open homepage"))
	assert.True(t, params.filters.MustNotMatch.AnyMatch("Can register an account"))
}

func TestRerunCommand(t *testing.T) {
	var params commandParams
	v := config.NewViper()
	cmd, err := newRootCommand(&bytes.Buffer{})
	require.NoError(t, err)
	cmd.ResetFlags()
	require.NoError(t, params.addFlags(cmd, v))
	require.NoError(t, cmd.ParseFlags([]string{"--base-url", "http://localhost:8085/", "--config", "my config.yaml"}))

	line := params.rerunCommand("wallet-ui-tests", cmd,
		[]string{"Can open homepage", "Cannot register account if input fields are invalid"})
	assert.Equal(t,
		`wallet-ui-tests --config 'my config.yaml' --base-url=http://localhost:8085/ `+
			`--run '^Can open homepage$' --run '^Cannot register account if input fields are invalid$'`,
		line)
}

func TestMissingBaseURLFails(t *testing.T) {
	var out bytes.Buffer
	cmd, err := newRootCommand(&out)
	require.NoError(t, err)
	cmd.SetArgs([]string{"--config", ""})
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	err = cmd.Execute()
	assert.EqualError(t, err, "baseUrl is required")
}
