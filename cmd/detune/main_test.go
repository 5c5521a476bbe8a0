package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/detune/internal/model"
)

func validConfig() model.Config {
	return model.Config{
		Scale:        "C Major",
		Level:        30,
		Backend:      "synth",
		ToneDuration: time.Second,
		Interval:     time.Second,
		SampleRate:   44100,
		LogLevel:     "warn",
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]func(*model.Config){
		"--scale":       func(c *model.Config) { c.Scale = "Q Major" },
		"--level":       func(c *model.Config) { c.Level = 33 },
		"--tone-ms":     func(c *model.Config) { c.ToneDuration = 0 },
		"--interval-ms": func(c *model.Config) { c.Interval = -time.Second },
		"--sample-rate": func(c *model.Config) { c.SampleRate = 0 },
		"--backend":     func(c *model.Config) { c.Backend = "kazoo" },
		"--log-level":   func(c *model.Config) { c.LogLevel = "loud" },
	}
	for flag, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		err := validateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), flag) {
			t.Fatalf("expected %s error, got %v", flag, err)
		}
	}
}

func TestWriteScales(t *testing.T) {
	var buf bytes.Buffer
	if err := writeScales(&buf, false, 80); err != nil {
		t.Fatalf("write scales: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 scales, got %d", len(lines))
	}
	if lines[1] != "D Major      D4 E4 F#4 G4 A4 B4 C#5 D5" {
		t.Fatalf("unexpected line: %q", lines[1])
	}
}

func TestWriteScalesWithStaff(t *testing.T) {
	var buf bytes.Buffer
	if err := writeScales(&buf, true, 80); err != nil {
		t.Fatalf("write scales: %v", err)
	}
	if got := strings.Count(buf.String(), "●"); got != 12*8 {
		t.Fatalf("expected %d note heads, got %d", 12*8, got)
	}
}

func TestDefaultConfigTemplateMentionsKeys(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, key := range []string{"scale = \"C Major\"", "level = 30", "backend = \"synth\"", "tone-ms", "interval-ms", "midi-port", "sample-rate", "log-level"} {
		if !strings.Contains(tmpl, key) {
			t.Fatalf("template missing %q", key)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger("info", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug("hidden")
	log.WithField("scale", "C Major").Info("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") || !strings.Contains(out, "scale=\"C Major\"") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if _, err := newLogger("nope", io.Discard); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
