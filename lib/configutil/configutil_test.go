package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Output  struct {
		Dir    string `json:"dir"`
		Format string `json:"format"`
	} `json:"output"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "indycar.json5")
	writeFile(t, path, `{
		// comments are fine
		base_url: "https://www.indycar.com",
		output: { dir: "output", format: "csv" },
	}`)

	config, err := Read[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://www.indycar.com", config.BaseUrl)
	require.Equal(t, "csv", config.Output.Format)
}

func TestReadLayersLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "indycar.json5"), `{
		base_url: "https://www.indycar.com",
		output: { dir: "output", format: "csv" },
	}`)
	writeFile(t, filepath.Join(dir, "indycar.local.json5"), `{
		base_url: "http://localhost:8080",
	}`)

	config, err := Read[testConfig](filepath.Join(dir, "indycar.json5"))
	if err != nil {
		t.Fatal(err)
	}
	// local wins where it speaks, base fills the rest
	require.Equal(t, "http://localhost:8080", config.BaseUrl)
	require.Equal(t, "output", config.Output.Dir)
}

func TestReadLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "indycar.local.json5"), `{
		base_url: "http://localhost:8080",
	}`)

	config, err := Read[testConfig](filepath.Join(dir, "indycar.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "http://localhost:8080", config.BaseUrl)
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Read[testConfig](filepath.Join(dir, "indycar.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	err := os.MkdirAll(nested, 0755)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "indycar.json5"), `{
		base_url: "https://www.indycar.com",
	}`)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	err = os.Chdir(nested)
	if err != nil {
		t.Fatal(err)
	}

	config, err := ReadRecursively[testConfig]("indycar.json5")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://www.indycar.com", config.BaseUrl)
}
