package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Sink consumes decoded speech samples.
type Sink interface {
	Play(samples []float32, sampleRate int) error
}

// FileSink writes samples to a WAV file instead of playing them.
type FileSink struct {
	Path string
}

func (s FileSink) Play(samples []float32, sampleRate int) error {
	if err := os.WriteFile(s.Path, EncodeWAV(samples, sampleRate), 0644); err != nil {
		return fmt.Errorf("writing wav file: %w", err)
	}
	return nil
}

// PlayerSink plays samples through the platform audio player. The WAV is
// staged in a temp file because afplay and friends only take paths.
type PlayerSink struct{}

func (PlayerSink) Play(samples []float32, sampleRate int) error {
	f, err := os.CreateTemp("", "trilingua-*.wav")
	if err != nil {
		return fmt.Errorf("creating temp wav: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(EncodeWAV(samples, sampleRate)); err != nil {
		f.Close()
		return fmt.Errorf("writing temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	cmd, err := playerCommand(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playing audio: %w", err)
	}
	return nil
}

// playerCommand picks an available command-line audio player.
func playerCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", path), nil
	case "linux":
		for _, player := range []string{"aplay", "paplay"} {
			if _, err := exec.LookPath(player); err == nil {
				return exec.Command(player, path), nil
			}
		}
		if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path), nil
		}
	case "windows":
		return exec.Command("powershell", "-c",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)), nil
	}
	return nil, fmt.Errorf("no audio player found")
}

// Available checks whether sound playback is possible on this system.
func Available() bool {
	switch runtime.GOOS {
	case "darwin":
		_, err := exec.LookPath("afplay")
		return err == nil
	case "linux":
		for _, player := range []string{"aplay", "paplay", "ffplay"} {
			if _, err := exec.LookPath(player); err == nil {
				return true
			}
		}
		return false
	case "windows":
		return true
	default:
		return false
	}
}
