package cli

import (
	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/audio"
)

// audioCommand creates the audio command: the procedural ambient bed
// (bass hum, heartbeat, breath swell) written as a WAV file.
func (c *CLI) audioCommand() *cobra.Command {
	var (
		output   string
		duration float64
	)

	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Generate the ambient audio bed as a WAV file",
		Long: `Audio synthesizes the ambient bed that pairs with the visual chain: a
30 Hz bass hum, a heartbeat pulse every 1.2 seconds with exponential
decay, and a 6 second breath swell, normalized to a quiet peak.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := audio.NewGenerator(duration, audio.DefaultSampleRate)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			if err := audio.WriteWAV(output, gen); err != nil {
				return err
			}
			prog.done("Synthesized ambient bed")

			printSuccess("%.0fs of ambient audio", duration)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "ambient.wav", "output WAV path")
	cmd.Flags().Float64Var(&duration, "duration", 60, "length in seconds")

	return cmd
}
