package audio

import (
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"wakealarm/internal/core/alarm"
)

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": mp3.Decode,
	".ogg": vorbis.Decode,
	".wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(rc)
	},
	".flac": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(rc)
	},
}

// decoderFor picks a decoder from the file extension.
func decoderFor(path string) (decodeFunc, error) {
	ext := extension(path)
	decode, ok := decoders[ext]
	if !ok {
		return nil, &alarm.FileError{Path: path, Reason: "no decoder for " + ext}
	}
	return decode, nil
}
