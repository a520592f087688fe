package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := make([]byte, 48000) // one second at 24kHz/mono/16-bit
	out := EncodeWAV(pcm, 24000, 1, 16)

	if len(out) != 44+len(pcm) {
		t.Fatalf("Length = %d, want %d", len(out), 44+len(pcm))
	}
	if !bytes.Equal(out[0:4], []byte("RIFF")) || !bytes.Equal(out[8:12], []byte("WAVE")) {
		t.Error("Missing RIFF/WAVE markers")
	}
	if !bytes.Equal(out[36:40], []byte("data")) {
		t.Error("Missing data chunk marker")
	}

	if rate := binary.LittleEndian.Uint32(out[24:28]); rate != 24000 {
		t.Errorf("Sample rate = %d, want 24000", rate)
	}
	if channels := binary.LittleEndian.Uint16(out[22:24]); channels != 1 {
		t.Errorf("Channels = %d, want 1", channels)
	}
	if bits := binary.LittleEndian.Uint16(out[34:36]); bits != 16 {
		t.Errorf("Bits per sample = %d, want 16", bits)
	}
	if byteRate := binary.LittleEndian.Uint32(out[28:32]); byteRate != 48000 {
		t.Errorf("Byte rate = %d, want 48000", byteRate)
	}
	if size := binary.LittleEndian.Uint32(out[40:44]); size != uint32(len(pcm)) {
		t.Errorf("Data size = %d, want %d", size, len(pcm))
	}
	if !bytes.Equal(out[44:], pcm) {
		t.Error("PCM payload mismatch")
	}
}

func TestEncodeWAVEmptyPayload(t *testing.T) {
	out := EncodeWAV(nil, 24000, 1, 16)
	if len(out) != 44 {
		t.Errorf("Length = %d, want header only (44)", len(out))
	}
}
