package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caian/h1st/history"
	"github.com/Caian/h1st/internal/config"
	"github.com/Caian/h1st/manifest"
)

func testConfig() *config.Config {
	return &config.Config{LogLevel: "info", LogFormat: "text", CacheSize: 8}
}

func runApp(t *testing.T, cfg *config.Config, stdin string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	a := New(&out, &logs, strings.NewReader(stdin), cfg)
	err := a.Run(context.Background())
	return out.String(), logs.String(), err
}

func TestRun_DemoWithTrack(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Track = []string{"out.B.txt"}

	out, logs, err := runApp(t, cfg, "")
	require.NoError(t, err)

	want := "args 4 out.txt(0)\n" +
		"out.txt(0) args 5 out.A.txt(1)\n" +
		"out.A.txt(1) args 6 out.B.txt(2)\n" +
		"out.B.txt(2) args 7 out.C.txt(3)\n" +
		"out.txt(0) args 9 out.A.txt(4)\n" +
		"out.A.txt(4) args 10 out.B.txt(5)\n" +
		"-------- Tracking out.B.txt: --------\n" +
		"args 4 out.txt(0)\n" +
		"out.txt(0) args 9 out.A.txt(4)\n" +
		"out.A.txt(4) args 10 out.B.txt(5)\n"
	assert.Equal(t, want, out)
	assert.Contains(t, logs, "demo build log")
	assert.Contains(t, logs, "Run finished.")
}

func TestRun_TrackMissing(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Track = []string{"out.A.txt", "out.D.txt"}

	_, _, err := runApp(t, cfg, "")
	assert.ErrorIs(t, err, history.ErrInputNotFound)

	cfg.IgnoreMissing = true
	out, _, err := runApp(t, cfg, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out,
		"-------- Tracking out.A.txt, out.D.txt: --------\n"+
			"args 4 out.txt(0)\n"+
			"out.txt(0) args 9 out.A.txt(4)\n"), out)
}

func TestRun_Manifest(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"demo.hcl", "demo.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			cfg.ManifestPath = filepath.Join("..", "..", "manifest", "testdata", name)
			cfg.Track = []string{"out.C.txt"}

			out, logs, err := runApp(t, cfg, "")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "command 4 out.txt(0)\n"), out)
			assert.True(t, strings.HasSuffix(out,
				"-------- Tracking out.C.txt: --------\n"+
					"command 4 out.txt(0)\n"+
					"out.txt(0) command 5 out.A.txt(1)\n"+
					"out.A.txt(1) command 6 out.B.txt(2)\n"+
					"out.B.txt(2) command 7 out.C.txt(3)\n"), out)
			assert.Contains(t, logs, "Manifest loaded.")
		})
	}
}

func TestRun_ManifestErrors(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.ManifestPath = filepath.Join("..", "..", "manifest", "testdata", "demo.txt")
	_, _, err := runApp(t, cfg, "")
	assert.ErrorIs(t, err, manifest.ErrUnknownFormat)

	cfg.ManifestPath = filepath.Join(t.TempDir(), "missing.hcl")
	_, _, err = runApp(t, cfg, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_ScriptFromStdin(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.ScriptPath = "-"
	cfg.Track = []string{"b.txt"}

	script := "push -- gen -- a.txt\npush a.txt -- cat -- b.txt\nstats\n"
	out, _, err := runApp(t, cfg, script)
	require.NoError(t, err)
	assert.Equal(t,
		"gen a.txt(0)\n"+
			"a.txt(0) cat b.txt(1)\n"+
			"nodes=2 files=2 edges=1 pushed=2 pruned=0 cache_hits=0 cache_misses=0\n"+
			"-------- Tracking b.txt: --------\n"+
			"gen a.txt(0)\n"+
			"a.txt(0) cat b.txt(1)\n",
		out)
}

func TestRun_ScriptFileOnTopOfManifest(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "extra.h1st")
	require.NoError(t, os.WriteFile(path, []byte("push out.C.txt -- pack -- out.tar\nhas out.tar\n"), 0o600))

	cfg := testConfig()
	cfg.ManifestPath = filepath.Join("..", "..", "manifest", "testdata", "demo.yaml")
	cfg.ScriptPath = path

	out, _, err := runApp(t, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "out.C.txt(3) pack out.tar(6)\ntrue\n", out)
}

func TestRun_ScriptFailures(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.ScriptPath = "-"

	out, logs, err := runApp(t, cfg, "push -- gen -- a.txt\nfrob\n")
	assert.ErrorIs(t, err, ErrScriptFailed)
	assert.Contains(t, out, "line 2: ")
	assert.Contains(t, logs, "Command failed")

	cfg.ScriptPath = filepath.Join(t.TempDir(), "nope.h1st")
	_, _, err = runApp(t, cfg, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger_LevelsAndFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l := newLogger("warn", "text", &buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	l = newLogger("debug", "json", &buf)
	l.Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":1`)
}
