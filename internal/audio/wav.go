package audio

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// EncodeWAV writes clip as a canonical 16-bit mono PCM WAV file.
func EncodeWAV(w io.Writer, clip Clip) error {
	if clip.SampleRate <= 0 {
		return errors.Newf("invalid sample rate %d", clip.SampleRate)
	}

	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)
	dataSize := uint32(len(clip.Samples) * blockAlign)

	header := struct {
		RIFF          [4]byte
		ChunkSize     uint32
		WAVE          [4]byte
		Fmt           [4]byte
		FmtSize       uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Data          [4]byte
		DataSize      uint32
	}{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   channels,
		SampleRate:    uint32(clip.SampleRate),
		ByteRate:      uint32(clip.SampleRate * blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "writing wav header")
	}
	if err := binary.Write(w, binary.LittleEndian, clip.Samples); err != nil {
		return errors.Wrap(err, "writing wav samples")
	}
	return nil
}
