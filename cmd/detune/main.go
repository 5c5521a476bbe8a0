// Package main provides the CLI entrypoint for detune.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/detune/internal/audio"
	"github.com/verte-zerg/detune/internal/config"
	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/model"
	"github.com/verte-zerg/detune/internal/playback"
	"github.com/verte-zerg/detune/internal/scale"
	"github.com/verte-zerg/detune/internal/session"
	"github.com/verte-zerg/detune/internal/tui"
)

const (
	defaultBackend    = audio.BackendSynth
	defaultToneMs     = 1000
	defaultIntervalMs = 1000
	defaultLogLevel   = "warn"
)

var (
	practiceScale      string
	practiceLevel      int
	practiceBackend    string
	practiceToneMs     int
	practiceIntervalMs int
	practiceMIDIPort   string
	practiceSampleRate int
	practiceLogLevel   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "detune",
		Short:         "Ear training: find the out-of-tune note",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceScale, "scale", scale.DefaultName, "scale to practice")
	rootCmd.Flags().IntVar(&practiceLevel, "level", session.DefaultLevel, "detune level in cents (40, 35, 30, 25, 20, 15, 10)")
	rootCmd.Flags().StringVar(&practiceBackend, "backend", defaultBackend, "audio backend (synth, midi, none)")
	rootCmd.Flags().IntVar(&practiceToneMs, "tone-ms", defaultToneMs, "tone duration in milliseconds")
	rootCmd.Flags().IntVar(&practiceIntervalMs, "interval-ms", defaultIntervalMs, "pause between tone starts in milliseconds")
	rootCmd.Flags().StringVar(&practiceMIDIPort, "midi-port", "", "MIDI output port name (default: first port)")
	rootCmd.Flags().IntVar(&practiceSampleRate, "sample-rate", audio.DefaultSampleRate, "synth sample rate in Hz")
	rootCmd.Flags().StringVar(&practiceLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScalesCmd())
	rootCmd.AddCommand(newDevicesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "scale", &practiceScale, fileCfg.Practice.Scale)
	applyIntConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyStringConfig(cmd, "backend", &practiceBackend, fileCfg.Practice.Backend)
	applyIntConfig(cmd, "tone-ms", &practiceToneMs, fileCfg.Practice.ToneMs)
	applyIntConfig(cmd, "interval-ms", &practiceIntervalMs, fileCfg.Practice.IntervalMs)
	applyStringConfig(cmd, "midi-port", &practiceMIDIPort, fileCfg.Practice.MIDIPort)
	applyIntConfig(cmd, "sample-rate", &practiceSampleRate, fileCfg.Practice.SampleRate)
	applyStringConfig(cmd, "log-level", &practiceLogLevel, fileCfg.Practice.LogLevel)

	cfg := model.Config{
		Scale:        practiceScale,
		Level:        practiceLevel,
		Backend:      practiceBackend,
		ToneDuration: time.Duration(practiceToneMs) * time.Millisecond,
		Interval:     time.Duration(practiceIntervalMs) * time.Millisecond,
		MIDIPort:     practiceMIDIPort,
		SampleRate:   practiceSampleRate,
		LogLevel:     practiceLogLevel,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	log, closeLog, err := newFileLogger(cfg.LogLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := audio.New(audio.Options{
		Backend:    cfg.Backend,
		SampleRate: uint32(cfg.SampleRate),
		MIDIPort:   cfg.MIDIPort,
	}, log.WithField("component", "audio"))
	if err != nil {
		return err
	}
	if cfg.Backend == audio.BackendMIDI {
		defer audio.CloseMIDI()
	}
	player := playback.NewPlayer(engine, cfg.Interval, log.WithField("component", "playback"))
	defer player.Stop()

	sess, err := session.New(generator.New(), cfg.Scale, cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	log.WithFields(logrus.Fields{"scale": cfg.Scale, "level": cfg.Level, "backend": cfg.Backend}).Info("session started")

	m := tui.NewModel(cfg, sess, player, log.WithField("component", "tui"))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# detune configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# scale = %q       # Scale to practice (see: detune scales)
# level = %d              # Detune level in cents: 40, 35, 30, 25, 20, 15, 10
# backend = %q         # Audio backend: synth, midi, none
# tone-ms = %d          # Tone duration in milliseconds
# interval-ms = %d      # Pause between tone starts in milliseconds
# midi-port = ""            # MIDI output port name (default: first port)
# sample-rate = %d     # Synth sample rate in Hz
# log-level = %q         # debug, info, warn, error
`,
		scale.DefaultName,
		session.DefaultLevel,
		defaultBackend,
		defaultToneMs,
		defaultIntervalMs,
		audio.DefaultSampleRate,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := scale.Lookup(cfg.Scale); err != nil {
		return fmt.Errorf("--scale: %w (available: %s)", err, strings.Join(scale.Names(), ", "))
	}
	if !session.ValidLevel(cfg.Level) {
		return fmt.Errorf("--level must be one of %v", session.Levels)
	}
	if cfg.ToneDuration <= 0 {
		return fmt.Errorf("--tone-ms must be > 0")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("--interval-ms must be > 0")
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("--sample-rate must be > 0")
	}
	if !isBackend(cfg.Backend) {
		return fmt.Errorf("--backend must be one of %s", strings.Join(audio.Backends, ", "))
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func isBackend(name string) bool {
	for _, b := range audio.Backends {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}
