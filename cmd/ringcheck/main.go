// Command ringcheck plays both ringtone variants and the vibration patterns
// so the audio setup can be checked by ear.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pdxmph/callsim/internal/audio"
	_ "github.com/pdxmph/callsim/internal/audio/command"
	_ "github.com/pdxmph/callsim/internal/audio/pulse"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/pdxmph/callsim/internal/haptic"
	"github.com/pdxmph/callsim/internal/logger"
	"github.com/pdxmph/callsim/internal/ringtone"
)

var (
	app      = kingpin.New("ringcheck", "Play each ringtone variant and vibration pattern")
	backend  = app.Flag("backend", "Audio backend: pulse, command or noop").String()
	duration = app.Flag("duration", "How long to ring each variant").Default("4s").Duration()
	volume   = app.Flag("volume", "Ringtone volume 0..1").Default("0.5").Float64()
	export   = app.Flag("export", "Write each variant to <dir>/<name>.flac instead of playing").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if _, err := logger.Init(logger.Config{Output: "stderr", Level: "debug"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *export != "" {
		if err := exportVariants(*export); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	manager, err := audio.NewManager(*backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using audio backend: %s\n", manager.Name())
	if !manager.IsEnabled() {
		fmt.Println("⚠ Backend cannot reach an output device, expect silence")
	}

	player := ringtone.New(manager.Backend(), ringtone.Options{Volume: *volume})
	for _, r := range []call.Ringtone{call.RingtoneA, call.RingtoneB} {
		clip := player.Clip(r)
		fmt.Printf("\nRingtone %s (%s, %s per loop)\n", r, clip.Name, clip.Duration().Round(time.Millisecond))

		if err := player.Play(r); err != nil {
			fmt.Printf("✗ %v\n", err)
			continue
		}
		time.Sleep(*duration)
		player.Stop()
		fmt.Printf("✓ Stopped at sample %d\n", player.Position())
		player.Rewind()
	}

	buzzer := haptic.NewBuzzer(manager.Backend())

	fmt.Println("\nAlert vibration")
	buzzer.Vibrate(call.AlertPattern...)
	time.Sleep(1500 * time.Millisecond)

	fmt.Println("Answer pulse")
	buzzer.Vibrate(call.AnswerPulse)
	time.Sleep(500 * time.Millisecond)

	fmt.Println("\n✓ Done")
}

func exportVariants(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, r := range []call.Ringtone{call.RingtoneA, call.RingtoneB} {
		clip := ringtone.Builtin(r)
		path := filepath.Join(dir, clip.Name+".flac")
		var buf bytes.Buffer
		if err := audio.EncodeFLAC(&buf, clip); err != nil {
			return err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", path)
	}
	return nil
}
