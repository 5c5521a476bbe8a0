package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/detune/internal/audio"
	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/notation"
	"github.com/verte-zerg/detune/internal/scale"
)

const defaultTermWidth = 80

var (
	scalesStaff bool
	devicesMIDI bool
)

func newScalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scales",
		Short: "List practice scales",
		Args:  cobra.NoArgs,
		RunE:  runScalesCmd,
	}
	cmd.Flags().BoolVar(&scalesStaff, "staff", false, "draw each scale on a staff")
	return cmd
}

func runScalesCmd(cmd *cobra.Command, _ []string) error {
	return writeScales(cmd.OutOrStdout(), scalesStaff, terminalWidth())
}

func writeScales(w io.Writer, staff bool, width int) error {
	for _, name := range scale.Names() {
		s, err := scale.Lookup(name)
		if err != nil {
			return err
		}
		notes := make([]string, len(s.Notes))
		for i, n := range s.Notes {
			notes[i] = n.String()
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, strings.Join(notes, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if !staff {
			continue
		}
		ws := make(generator.WorkingSet, len(s.Notes))
		for i, n := range s.Notes {
			ws[i] = generator.WorkingNote{Note: n}
		}
		drawing := notation.Render(notation.Project(ws, nil), notation.Size{Width: width})
		if _, err := fmt.Fprintf(w, "%s\n\n", drawing); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func newDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List audio playback devices or MIDI output ports",
		Args:  cobra.NoArgs,
		RunE:  runDevicesCmd,
	}
	cmd.Flags().BoolVar(&devicesMIDI, "midi", false, "list MIDI output ports instead")
	return cmd
}

func runDevicesCmd(cmd *cobra.Command, _ []string) error {
	var names []string
	if devicesMIDI {
		defer audio.CloseMIDI()
		names = audio.MIDIOutPorts()
	} else {
		var err error
		names, err = audio.PlaybackDevices()
		if err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no devices found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
