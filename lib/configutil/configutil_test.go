package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Delay   int    `json:"delay"`
	Cookies []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"cookies"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	_, err := ReadConfig(name, testConfig{})
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, name, `{
		// comments are allowed
		base_url: "https://lms.example.jp",
		cookies: [{name: "JSESSIONID", value: "abc"}],
	}`)

	cfg, err := ReadConfig(name, testConfig{Delay: 500, BaseUrl: "https://default"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://lms.example.jp", cfg.BaseUrl)
	require.Equal(t, 500, cfg.Delay)
	require.Len(t, cfg.Cookies, 1)

	writeFile(t, filepath.Join(dir, "config.local.json5"), `{delay: 1000}`)

	cfg, err = ReadConfig(name, testConfig{Delay: 500})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://lms.example.jp", cfg.BaseUrl)
	require.Equal(t, 1000, cfg.Delay)
}

func TestSplitExt(t *testing.T) {
	base, ext := splitExt("config.json5")
	require.Equal(t, "config", base)
	require.Equal(t, "json5", ext)

	base, ext = splitExt("config")
	require.Equal(t, "config", base)
	require.Equal(t, "", ext)
}
