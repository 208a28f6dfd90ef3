package sound

import (
	"encoding/binary"
	"math"
)

// tone renders a sine at freq for ms milliseconds as 16-bit stereo PCM,
// with a linear fade-out so clips end without a click.
func tone(freq float64, ms int, vol float64) []byte {
	n := sampleRate * ms / 1000
	b := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*t) * envelope * vol * math.MaxInt16)
		binary.LittleEndian.PutUint16(b[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(b[i*4+2:], uint16(v))
	}
	return b
}

// sequence concatenates one tone per frequency, ms milliseconds each.
func sequence(freqs []float64, ms int, vol float64) []byte {
	var b []byte
	for _, f := range freqs {
		b = append(b, tone(f, ms, vol)...)
	}
	return b
}
