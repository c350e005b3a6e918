package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/f3rmion/trilingua/internal/audio"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Speak text aloud (or write it to a WAV file)",
	Long: `Synthesize speech for the given text and play it through the system
audio player. Ruby annotations are stripped before synthesis. Each
language uses a fixed backend voice.

Examples:
  trilingua speak 今日はいい天気ですね --lang jp
  trilingua speak "good morning" --lang en --out greeting.wav`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

var (
	speakLang string
	speakOut  string
)

func init() {
	rootCmd.AddCommand(speakCmd)
	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "jp", "language of the text: jp, en or zh")
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "write a WAV file instead of playing")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	lang, err := trilingua.ParseLang(speakLang)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	text := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(cmd.Context(), a.settings.Timeout())
	defer cancel()

	samples, err := a.client.Synthesize(ctx, text, lang)
	if err != nil {
		return fmt.Errorf("synthesizing speech: %w", err)
	}

	var sink audio.Sink
	if speakOut != "" {
		sink = audio.FileSink{Path: speakOut}
	} else {
		if !audio.Available() {
			return fmt.Errorf("no audio player found; use --out to write a WAV file")
		}
		sink = audio.PlayerSink{}
	}

	if err := sink.Play(samples, audio.SampleRate); err != nil {
		return err
	}
	if speakOut != "" {
		fmt.Printf("Wrote %s (%.1fs of audio)\n", speakOut,
			float64(len(samples))/float64(audio.SampleRate))
	}
	return nil
}
