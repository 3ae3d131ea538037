// Command ntscpwmd wires the engine, the software PWM/DMA transport, and the
// optional RF broadcast sink and diagnostics monitor together: parse config,
// build the video pipeline, start transmission, wait for Ctrl+C.
package main

import (
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samuel/go-hackrf/hackrf"

	"ntscpwm/config"
	"ntscpwm/engine"
	"ntscpwm/hal"
	"ntscpwm/monitor"
	"ntscpwm/pattern"
	"ntscpwm/rf"
)

// diagnosticsSource adapts engine and DMA handler state into monitor.Source.
type diagnosticsSource struct {
	eng      *engine.Engine
	pp       *hal.PingPong
	deadline time.Duration
}

func (s diagnosticsSource) Snapshot() monitor.Snapshot {
	return monitor.Snapshot{
		Scanline:        s.eng.Scanline(),
		RenderingActive: s.eng.Diagnostics.RenderingActive,
		FrameCounter:    s.eng.Diagnostics.FrameCounter,
		HandlerMargin:   s.deadline - s.pp.LastHandlerDuration(),
	}
}

// nullSink stands in for the real PWM compare register write, which is
// platform bring-up left to whatever backend embeds this pipeline; it just
// counts samples so the process has observable throughput.
type nullSink struct{ n atomic.Uint64 }

func (s *nullSink) Write(uint16) { s.n.Add(1) }

// runMonitor drives the diagnostics dashboard until the user quits it; it
// never touches stop, since quitting the dashboard should not stop the
// pipeline it is only observing.
func runMonitor(m monitor.Model) {
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Printf("monitor: %v", err)
	}
}

func main() {
	cfg := config.New()

	clock := hal.ClockTree{SystemClockHz: cfg.SystemClockHz}
	if err := clock.Validate(); err != nil {
		log.Fatalf("clock tree: %v", err)
	}

	var palette engine.Palette
	engine.LoadVGAPalette(&palette)

	framebuffer := make(engine.Framebuffer, engine.FrameWidth*engine.FrameHeight)
	eng, err := engine.New(&palette, framebuffer)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	pp := hal.NewPingPong(eng)

	stop := make(chan struct{})

	// Content producer: stands in for whatever compute thread would be
	// drawing into the framebuffer on real hardware.
	go func() {
		content := pattern.NewCheckerboard(engine.FrameWidth, engine.FrameHeight, 8, 0.09, 0.11, 0.12)
		ticker := time.NewTicker(time.Second / 60)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				content.Next(framebuffer)
			}
		}
	}()

	var sink hal.Sink = &nullSink{}

	if cfg.RF {
		if err := hackrf.Init(); err != nil {
			log.Fatalf("hackrf.Init: %v", err)
		}
		defer hackrf.Exit()
		dev, err := hackrf.Open()
		if err != nil {
			log.Fatalf("hackrf.Open: %v", err)
		}
		defer dev.Close()

		sampleRate := cfg.Bandwidth * 1_000_000
		tx, err := rf.NewTransmitter(dev, uint64(cfg.Frequency*1_000_000), cfg.Bandwidth*1_000_000, sampleRate, cfg.Gain)
		if err != nil {
			log.Fatalf("rf: %v", err)
		}
		if err := tx.Start(); err != nil {
			log.Fatalf("rf.Start: %v", err)
		}
		sink = tx
		log.Printf("broadcasting on %.3f MHz (%.2f MHz bandwidth)", cfg.Frequency, cfg.Bandwidth)
	}

	go hal.Run(pp, sink, stop)

	if cfg.Monitor {
		go func() {
			// The Bubble Tea program owns the terminal; the pipeline keeps
			// running in the background goroutines above regardless.
			const scanlineDeadline = 63400 * time.Nanosecond
			m := monitor.New(diagnosticsSource{eng: eng, pp: pp, deadline: scanlineDeadline}, scanlineDeadline)
			runMonitor(m)
		}()
	}

	log.Printf("NTSC PWM engine running on GPIO %d. Press Ctrl+C to stop.", cfg.Pin)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	close(stop)
	log.Println("shutting down.")
}
