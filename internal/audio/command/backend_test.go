package command

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pdxmph/callsim/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubName = "callsim-test-player"

// installPlayer puts a shell script on PATH that records the file it was
// asked to play and then sleeps for pause. It returns the log path.
func installPlayer(t *testing.T, pause string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "plays.log")
	script := fmt.Sprintf("#!/bin/sh\necho \"$1\" >> %q\nexec sleep %s\n", logPath, pause)
	require.NoError(t, os.WriteFile(filepath.Join(dir, stubName), []byte(script), 0o755))

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	saved := players
	players = []player{{name: stubName}}
	t.Cleanup(func() { players = saved })

	return logPath
}

func playedFiles(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(data))
}

func testClip() audio.Clip {
	return audio.Clip{Name: "test", SampleRate: 8000, Samples: audio.Tone(8000, time.Second, 0.5, 0, 440)}
}

func TestBackend_NoPlayer(t *testing.T) {
	saved := players
	players = []player{{name: "callsim-no-such-player"}}
	t.Cleanup(func() { players = saved })

	b := NewBackend()
	assert.False(t, b.IsEnabled())
	assert.Equal(t, "command", b.Name())

	_, err := b.Play(testClip(), audio.PlayOptions{})
	assert.Error(t, err)
}

func TestBackend_EmptyClip(t *testing.T) {
	installPlayer(t, "0")

	_, err := NewBackend().Play(audio.Clip{Name: "empty", SampleRate: 8000}, audio.PlayOptions{})
	assert.Error(t, err)
}

func TestBackend_PlayOnceRemovesTempFile(t *testing.T) {
	logPath := installPlayer(t, "0")

	b := NewBackend()
	require.True(t, b.IsEnabled())

	s, err := b.Play(testClip(), audio.PlayOptions{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(playedFiles(t, logPath)) == 1 }, 5*time.Second, 10*time.Millisecond)
	wav := playedFiles(t, logPath)[0]
	assert.True(t, strings.HasSuffix(wav, ".wav"))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(wav)
		return os.IsNotExist(err)
	}, 5*time.Second, 10*time.Millisecond)

	s.Stop()
	assert.Len(t, playedFiles(t, logPath), 1, "no restart without loop")
}

func TestBackend_LoopRestartsUntilStopped(t *testing.T) {
	logPath := installPlayer(t, "0.05")

	clip := testClip()
	s, err := NewBackend().Play(clip, audio.PlayOptions{Loop: true})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(playedFiles(t, logPath)) >= 3 }, 5*time.Second, 10*time.Millisecond)

	pos := s.Stop()
	assert.GreaterOrEqual(t, pos, 0)
	assert.Less(t, pos, len(clip.Samples))

	files := playedFiles(t, logPath)
	for _, f := range files {
		assert.Equal(t, files[0], f, "every loop plays the same file")
	}
	_, err = os.Stat(files[0])
	assert.True(t, os.IsNotExist(err), "temp file removed after stop")

	n := len(files)
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, playedFiles(t, logPath), n, "no restart after stop")
}

func TestBackend_StopKillsPlayer(t *testing.T) {
	logPath := installPlayer(t, "30")

	clip := testClip()
	s, err := NewBackend().Play(clip, audio.PlayOptions{Loop: true})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return len(playedFiles(t, logPath)) == 1 }, 5*time.Second, 10*time.Millisecond)

	start := time.Now()
	pos := s.Stop()
	assert.Less(t, time.Since(start), 5*time.Second, "stop does not wait for the player to finish")
	assert.Less(t, pos, len(clip.Samples))
	assert.Equal(t, pos, s.Stop(), "second stop reports the same position")

	_, err = os.Stat(playedFiles(t, logPath)[0])
	assert.True(t, os.IsNotExist(err))
}

func TestBackend_Exclusive(t *testing.T) {
	assert.False(t, (&Backend{}).Exclusive())
	assert.False(t, (&Backend{player: &player{name: "paplay"}}).Exclusive())
	assert.True(t, (&Backend{player: &player{name: "aplay", exclusive: true}}).Exclusive())
	assert.True(t, audio.IsExclusive(&Backend{player: &player{name: "aplay", exclusive: true}}))
}
