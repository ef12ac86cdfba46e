package audio

import (
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// DefaultSampleRate matches the rate the ambient bed was tuned at.
const DefaultSampleRate = beep.SampleRate(44100)

// WriteWAV renders the generator to a 16-bit WAV file. The output file
// is created, written and closed inside this call on every path; a
// failed encode removes the partial file.
func WriteWAV(path string, g *Generator) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}

	format := beep.Format{
		SampleRate:  g.rate,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(f, g, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
