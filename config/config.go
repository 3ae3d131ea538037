// Package config parses command-line flags into the engine's runtime
// configuration: a struct populated by flag.*Var calls plus fields derived
// after parsing.
package config

import "flag"

// Config holds the engine's startup configuration.
type Config struct {
	Pin           uint
	SystemClockHz uint64

	// RF broadcast sink (optional, disabled by default).
	RF        bool
	Frequency float64
	Bandwidth float64
	Gain      int

	// Diagnostics monitor (optional, disabled by default).
	Monitor bool
}

// New parses command-line flags and returns a populated Config.
func New() *Config {
	cfg := &Config{}
	pin := flag.Uint("pin", 27, "GPIO pin driving the composite video RC filter")
	clockMHz := flag.Float64("clock", 315, "System clock in MHz (must be exactly 315 for correct NTSC timing)")
	flag.BoolVar(&cfg.RF, "rf", false, "Also broadcast the composite signal over a HackRF-class SDR")
	flag.Float64Var(&cfg.Frequency, "freq", 433.0, "RF broadcast frequency in MHz (only used with -rf)")
	flag.Float64Var(&cfg.Bandwidth, "bw", 1.5, "RF channel bandwidth in MHz (only used with -rf)")
	flag.IntVar(&cfg.Gain, "gain", 30, "RF TX VGA gain 0-47 (only used with -rf)")
	flag.BoolVar(&cfg.Monitor, "monitor", false, "Show a terminal diagnostics dashboard")
	flag.Parse()

	cfg.Pin = *pin
	cfg.SystemClockHz = uint64(*clockMHz * 1_000_000)
	return cfg
}
