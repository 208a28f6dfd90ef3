package sound

import (
	"encoding/binary"
	"testing"
)

func TestToneShapeAndFade(t *testing.T) {
	b := tone(440, 100, 0.5)

	wantLen := sampleRate * 100 / 1000 * 4
	if len(b) != wantLen {
		t.Fatalf("tone length = %d bytes, want %d", len(b), wantLen)
	}

	// Stereo: both channels carry the same sample.
	for i := 0; i < len(b); i += 4 {
		l := int16(binary.LittleEndian.Uint16(b[i:]))
		r := int16(binary.LittleEndian.Uint16(b[i+2:]))
		if l != r {
			t.Fatalf("sample %d: channels differ (%d vs %d)", i/4, l, r)
		}
	}

	// The fade-out keeps the tail quieter than the head.
	peak := func(from, to int) int16 {
		var p int16
		for i := from; i < to; i += 4 {
			v := int16(binary.LittleEndian.Uint16(b[i:]))
			if v < 0 {
				v = -v
			}
			if v > p {
				p = v
			}
		}
		return p
	}
	head := peak(0, len(b)/4)
	tail := peak(len(b)*3/4, len(b))
	if tail >= head {
		t.Errorf("tail peak %d should be quieter than head peak %d", tail, head)
	}
}

func TestSequenceConcatenates(t *testing.T) {
	one := tone(440, 50, 0.2)
	seq := sequence([]float64{440, 880, 220}, 50, 0.2)
	if len(seq) != 3*len(one) {
		t.Errorf("sequence length = %d, want %d", len(seq), 3*len(one))
	}
}

func TestEffectTableCoversAllCues(t *testing.T) {
	effects := effectTable()
	for _, name := range []string{"press", "correct", "wrong", "complete"} {
		if len(effects[name]) == 0 {
			t.Errorf("effect %q is missing or empty", name)
		}
	}
}
