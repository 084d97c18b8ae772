package editor

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/burrow/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func fakeLauncher(configured, env string, installed ...string) *Launcher {
	l := New(configured)
	l.getenv = func(key string) string {
		if key == "EDITOR" {
			return env
		}
		return ""
	}
	l.lookPath = func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	return l
}

func TestDetectOrder(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        string
		installed  []string
		want       []string
	}{
		{"configured wins", "hx", "nano", []string{"hx", "nano", "vim"}, []string{"hx"}},
		{"editor env with args", "", "code -w", []string{"code", "vim"}, []string{"code", "-w"}},
		{"missing env falls back to vim", "", "subl", []string{"vim", "vi"}, []string{"vim"}},
		{"vi last", "", "", []string{"vi"}, []string{"vi"}},
		{"blank configured is skipped", "   ", "nano", []string{"nano"}, []string{"nano"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fakeLauncher(tt.configured, tt.env, tt.installed...).Detect()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectNothingInstalled(t *testing.T) {
	_, err := fakeLauncher("", "").Detect()
	assert.ErrorIs(t, err, ErrNoEditor)

	_, err = fakeLauncher("", "").Command("/tmp/x")
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "/tmp/x", launchErr.Path)
	assert.ErrorIs(t, err, ErrNoEditor)
}

func TestCommandAppendsPath(t *testing.T) {
	cmd, err := fakeLauncher("", "code -w", "code").Command("/tmp/a b.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "-w", "/tmp/a b.txt"}, cmd.Args)
}

func TestOpenReportsExitStatus(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	assert.NoError(t, New("true").Open("/tmp/whatever"))

	err := New("false").Open("/tmp/whatever")
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "false", launchErr.Editor)
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestFailed(t *testing.T) {
	assert.NoError(t, Failed(nil, "/x", nil))

	err := Failed(exec.Command("nvim", "/x"), "/x", errors.New("exit status 1"))
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "nvim", launchErr.Editor)
	assert.Contains(t, err.Error(), "nvim failed on /x")
}

func TestOpenExternal(t *testing.T) {
	l := New("")
	var opened string
	l.opener = func(path string) error {
		opened = path
		return nil
	}
	require.NoError(t, l.OpenExternal("/tmp/pic.png"))
	assert.Equal(t, "/tmp/pic.png", opened)

	l.opener = func(string) error { return errors.New("no xdg-open") }
	var launchErr *LaunchError
	assert.ErrorAs(t, l.OpenExternal("/tmp/pic.png"), &launchErr)
}
