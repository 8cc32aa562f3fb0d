package audio

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

const flacBlockSize = 4096

// LoadFLAC decodes a FLAC file into a mono clip. Multi-channel audio is
// averaged down and any bit depth is rescaled to 16 bits.
func LoadFLAC(path string) (Clip, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return Clip{}, errors.Wrapf(err, "opening flac %s", path)
	}
	defer stream.Close()

	clip, err := decodeFLAC(stream)
	if err != nil {
		return Clip{}, errors.Wrapf(err, "decoding flac %s", path)
	}
	clip.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return clip, nil
}

func decodeFLAC(stream *flac.Stream) (Clip, error) {
	info := stream.Info
	if info.NChannels == 0 {
		return Clip{}, errors.New("stream has no channels")
	}
	shift := int(info.BitsPerSample) - 16

	clip := Clip{SampleRate: int(info.SampleRate)}
	if info.NSamples > 0 {
		clip.Samples = make([]int16, 0, info.NSamples)
	}

	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Clip{}, errors.Wrap(err, "parsing frame")
		}

		n := len(f.Subframes)
		for i := 0; i < int(f.BlockSize); i++ {
			var sum int64
			for _, sub := range f.Subframes {
				sum += int64(sub.Samples[i])
			}
			v := sum / int64(n)
			if shift > 0 {
				v >>= shift
			} else if shift < 0 {
				v <<= -shift
			}
			clip.Samples = append(clip.Samples, int16(v))
		}
	}

	if len(clip.Samples) == 0 {
		return Clip{}, errors.New("stream has no samples")
	}
	return clip, nil
}

// EncodeFLAC writes clip as a mono 16-bit FLAC stream using verbatim subframes.
func EncodeFLAC(w io.Writer, clip Clip) error {
	info := &meta.StreamInfo{
		BlockSizeMin:  flacBlockSize,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(clip.SampleRate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(len(clip.Samples)),
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return errors.Wrap(err, "creating flac encoder")
	}

	for start := 0; start < len(clip.Samples); start += flacBlockSize {
		end := min(start+flacBlockSize, len(clip.Samples))
		block := clip.Samples[start:end]

		samples32 := make([]int32, len(block))
		for i, s := range block {
			samples32[i] = int32(s)
		}

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(len(block)),
				SampleRate:        uint32(clip.SampleRate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
				Num:               uint64(start / flacBlockSize),
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples32,
				NSamples:  len(block),
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			return errors.Wrap(err, "writing flac frame")
		}
	}

	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "closing flac encoder")
	}
	return nil
}
