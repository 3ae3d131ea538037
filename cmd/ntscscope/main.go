// Command ntscscope is the bench-verification counterpart to ntscpwmd: it
// tunes an RTL-SDR device to the frequency an rf.Transmitter is
// broadcasting on, reconstructs the composite signal into a grayscale
// image, and pipes it to VLC for display: open device, ReadSync loop,
// demodulate, write to the VLC pipe.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	rtl "github.com/jpoirier/gortlsdr"

	"ntscpwm/engine"
	"ntscpwm/scope"
)

const frameRate = 60.0

func startVLCPipe(width, height int) (io.WriteCloser, *exec.Cmd, error) {
	vlcPath, err := exec.LookPath("vlc")
	if err != nil {
		return nil, nil, fmt.Errorf("ntscscope: VLC not found in PATH: %w", err)
	}

	args := []string{
		"--demux", "rawvideo",
		"--rawvid-fps", fmt.Sprintf("%f", frameRate),
		"--rawvid-width", fmt.Sprintf("%d", width),
		"--rawvid-height", fmt.Sprintf("%d", height),
		"--rawvid-chroma", "GREY",
		"-",
	}

	cmd := exec.Command(vlcPath, args...)
	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ntscscope: StdinPipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("ntscscope: start vlc: %w", err)
	}
	return stdinPipe, cmd, nil
}

func main() {
	freqMHz := flag.Float64("freq", 433.0, "Center frequency to tune in MHz (must match the transmitter)")
	sampleRateHz := flag.Int("rate", 2_000_000, "SDR sample rate in Hz")
	gain := flag.Int("gain", 350, "Tuner gain in tenths of a dB")
	flag.Parse()

	log.Println("starting RTL-SDR NTSC bench receiver")

	dev, err := scope.OpenDevice(int(*freqMHz*1_000_000), *sampleRateHz, *gain)
	if err != nil {
		log.Fatalf("ntscscope: %v", err)
	}
	defer dev.Close()
	log.Printf("tuned to %.3f MHz, sample rate %.3f MHz", *freqMHz, float64(*sampleRateHz)/1e6)

	vlcPipe, vlcCmd, err := startVLCPipe(engine.FrameWidth, engine.FrameHeight)
	if err != nil {
		log.Fatalf("ntscscope: %v", err)
	}
	defer vlcCmd.Process.Kill()
	defer vlcPipe.Close()

	receiver := scope.NewReceiver(float64(*sampleRateHz))
	log.Println("looking for signal...")

	readBuffer := make([]byte, rtl.DefaultBufLength)
	for {
		bytesRead, err := dev.ReadSync(readBuffer, len(readBuffer))
		if err != nil {
			log.Printf("ntscscope: ReadSync: %v", err)
			break
		}
		if bytesRead != len(readBuffer) {
			log.Printf("ntscscope: short read (%d / %d bytes)", bytesRead, len(readBuffer))
			continue
		}

		if receiver.ProcessIQ(readBuffer) {
			if _, err := vlcPipe.Write(receiver.Frame()); err != nil {
				log.Println("ntscscope: VLC pipe closed, stopping")
				break
			}
		}
	}
}
