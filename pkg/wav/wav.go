// Package wav wraps raw PCM audio in a minimal WAV container.
// The Gemini Live API streams reply audio as base64 PCM fragments with a
// MIME descriptor like "audio/L16;rate=24000"; this package turns one turn's
// worth of fragments into a single playable byte stream.
package wav

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied when the MIME descriptor omits a parameter.
const (
	DefaultSampleRate    = 24000
	DefaultBitsPerSample = 16
	DefaultNumChannels   = 1
)

// Format describes the PCM layout declared by a MIME descriptor.
type Format struct {
	NumChannels   int
	SampleRate    int
	BitsPerSample int
}

// Header is the canonical 44-byte RIFF/WAVE header for uncompressed PCM.
type Header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + data length
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data length
}

// ParseMIMEType extracts the PCM layout from a descriptor of the form
// "type/subtype;param=value;...". A subtype of "L<n>" sets the bit depth
// (audio/L24 -> 24 bits); a "rate" parameter sets the sample rate. Anything
// unrecognized falls back to 16-bit 24kHz mono.
func ParseMIMEType(mimeType string) Format {
	f := Format{
		NumChannels:   DefaultNumChannels,
		SampleRate:    DefaultSampleRate,
		BitsPerSample: DefaultBitsPerSample,
	}

	parts := strings.Split(mimeType, ";")
	fileType := strings.TrimSpace(parts[0])

	if _, subtype, ok := strings.Cut(fileType, "/"); ok {
		if strings.HasPrefix(subtype, "L") {
			if bits, err := strconv.Atoi(subtype[1:]); err == nil {
				f.BitsPerSample = bits
			}
		}
	}

	for _, param := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "rate" {
			if rate, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				f.SampleRate = rate
			}
		}
	}

	return f
}

// NewHeader builds the PCM header for the given data length and format.
func NewHeader(dataLength int, f Format) Header {
	byteRate := f.SampleRate * f.NumChannels * f.BitsPerSample / 8
	blockAlign := f.NumChannels * f.BitsPerSample / 8

	return Header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + uint32(dataLength),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(f.NumChannels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(byteRate),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(f.BitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataLength),
	}
}

// EncodeBase64Fragments decodes the base64 fragments, concatenates them in
// order, and prepends the 44-byte header derived from mimeType.
//
// NOTE: the header's size fields are computed from the summed base64 string
// lengths, not the decoded byte count. Upstream produced exactly these bytes
// and downstream compatibility tests pin them, so the quirk is kept as is.
func EncodeBase64Fragments(fragments []string, mimeType string) ([]byte, error) {
	format := ParseMIMEType(mimeType)

	dataLength := 0
	for _, frag := range fragments {
		dataLength += len(frag)
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataLength))
	if err := binary.Write(buf, binary.LittleEndian, NewHeader(dataLength, format)); err != nil {
		return nil, fmt.Errorf("wav: failed to write header: %w", err)
	}

	for i, frag := range fragments {
		decoded, err := base64.StdEncoding.DecodeString(frag)
		if err != nil {
			return nil, fmt.Errorf("wav: failed to decode fragment %d: %w", i, err)
		}
		buf.Write(decoded)
	}

	return buf.Bytes(), nil
}
