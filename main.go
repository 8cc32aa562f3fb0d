package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/pdxmph/callsim/internal/audio"
	_ "github.com/pdxmph/callsim/internal/audio/command"
	_ "github.com/pdxmph/callsim/internal/audio/pulse"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/pdxmph/callsim/internal/config"
	"github.com/pdxmph/callsim/internal/contacts"
	"github.com/pdxmph/callsim/internal/db"
	"github.com/pdxmph/callsim/internal/haptic"
	"github.com/pdxmph/callsim/internal/logger"
	"github.com/pdxmph/callsim/internal/metrics"
	"github.com/pdxmph/callsim/internal/ringtone"
	"github.com/pdxmph/callsim/internal/tui"
)

var (
	app         = kingpin.New("callsim", "Simulate incoming phone calls from your contacts")
	configPath  = app.Flag("config", "Config file").Default(filepath.Join(config.Dir(), "config.toml")).String()
	dbPath      = app.Flag("db", "Database file (overrides config)").String()
	styleFlag   = app.Flag("style", "Phone style for this run: android or iphone").Enum("android", "iphone")
	backendFlag = app.Flag("backend", "Audio backend: pulse, command or noop").String()
	mute        = app.Flag("mute", "Disable ringtone and vibration sound").Bool()
	verbose     = app.Flag("verbose", "Debug logging").Short('v').Bool()
	logFile     = app.Flag("logfile", "Log file, or stderr").String()
	metricsAddr = app.Flag("metrics-addr", "Serve Prometheus metrics on this address").String()

	runCmd = app.Command("run", "Start the call simulator").Default()

	initCmd = app.Command("init", "Create a new empty database")

	fixturesCmd  = app.Command("fixtures", "Create a database seeded with sample contacts")
	fixturesPath = fixturesCmd.Arg("path", "Database file to create").Required().String()

	configCmd   = app.Command("config", "Write the effective configuration to the config file")
	configForce = configCmd.Flag("force", "Overwrite an existing file").Bool()

	backendsCmd = app.Command("backends", "List audio backends and whether they can play")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig()
	if err != nil {
		fail(err)
	}

	closer, err := initLogger(cfg, command == runCmd.FullCommand())
	if err != nil {
		fail(err)
	}
	defer closer.Close()

	switch command {
	case runCmd.FullCommand():
		err = run(cfg)
	case initCmd.FullCommand():
		err = initDatabase(cfg.Database.Path)
	case fixturesCmd.FullCommand():
		err = createFixtures(*fixturesPath)
	case configCmd.FullCommand():
		err = writeConfig(cfg, *configPath, *configForce)
	case backendsCmd.FullCommand():
		listBackends(os.Stdout)
	}
	if err != nil {
		zlog.Error().Err(err).Str("command", command).Msg("Command failed")
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return nil, err
	}

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *backendFlag != "" {
		cfg.Audio.Backend = *backendFlag
	}
	if *mute {
		cfg.Audio.Mute = true
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFile != "" {
		cfg.Log.Path = *logFile
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogger logs to a file while the TUI owns the terminal, and to stderr
// for the one-shot commands.
func initLogger(cfg *config.Config, tuiRunning bool) (io.Closer, error) {
	output := cfg.Log.Path
	if !tuiRunning || cfg.Log.Path == "stderr" {
		output = "stderr"
	}
	return logger.Init(logger.Config{
		Output: output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.Path,
	})
}

func run(cfg *config.Config) error {
	database, err := db.OpenOrInitialize(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	store := contacts.Open(database)
	style := resolveStyle(*styleFlag, database, cfg.Phone.Style)

	backendName := cfg.Audio.Backend
	if cfg.Audio.Mute {
		backendName = audio.NoopName
	}
	manager, err := audio.NewManager(backendName)
	if err != nil {
		return err
	}

	player := ringtone.New(ringerBackend(cfg, manager.Backend()), ringtone.Options{
		Volume: cfg.Audio.Volume,
		Overrides: map[call.Ringtone]string{
			call.RingtoneA: cfg.Audio.AndroidRingtone,
			call.RingtoneB: cfg.Audio.IPhoneRingtone,
		},
	})

	session := call.NewSession(call.Options{
		Ringer:      player,
		Vibrator:    haptic.New(manager.Backend(), cfg.Phone.NoVibrate || cfg.Audio.Mute),
		RingTimeout: time.Duration(cfg.Phone.RingTimeoutSec) * time.Second,
	})
	defer session.Close()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				zlog.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	zlog.Info().
		Str("db", cfg.Database.Path).
		Str("style", string(style)).
		Str("backend", manager.Name()).
		Int("contacts", store.Len()).
		Msg("Starting callsim")

	model := tui.New(store, database, session, style)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}

// ringerBackend returns the backend for the ringtone. Volume 0 is silence,
// while the backends read a zero volume as full scale.
func ringerBackend(cfg *config.Config, backend audio.Backend) audio.Backend {
	if cfg.Audio.Volume == 0 {
		return audio.NewNoopBackend()
	}
	return backend
}

// resolveStyle picks the phone style: the command line flag, then the saved
// preference, then the config file.
func resolveStyle(flag string, settings contacts.KV, fallback string) call.Style {
	candidates := []string{flag}
	if saved, ok, err := settings.GetValue(db.KeyPhoneStyle); err != nil {
		zlog.Warn().Err(err).Msg("Reading saved phone style")
	} else if ok {
		candidates = append(candidates, saved)
	}
	candidates = append(candidates, fallback)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		style, err := call.ParseStyle(c)
		if err != nil {
			zlog.Warn().Err(err).Msg("Ignoring phone style")
			continue
		}
		return style
	}
	return call.StyleAndroid
}

func initDatabase(path string) error {
	if err := db.Initialize(path); err != nil {
		return err
	}
	fmt.Printf("Database initialized at %s\n", path)
	return nil
}

func createFixtures(path string) error {
	if err := db.CreateFixturesDatabase(path); err != nil {
		return err
	}
	fmt.Printf("Fixtures database created at %s\n", path)
	fmt.Printf("Run: callsim --db %s\n", path)
	return nil
}

func writeConfig(cfg *config.Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func listBackends(w io.Writer) {
	for _, name := range audio.ListBackends() {
		b, err := audio.CreateBackend(name)
		if err != nil {
			continue
		}
		status := "unavailable"
		if b.IsEnabled() {
			status = "available"
		}
		fmt.Fprintf(w, "%-8s %s\n", name, status)
	}
}
