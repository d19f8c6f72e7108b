package index

import (
	"encoding/binary"
	"math"
)

// encodeVector serializes a float32 vector as little-endian bytes.
func encodeVector(vec []float32) []byte {
	out := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// decodeVector deserializes a little-endian float32 vector, rejecting it
// if its byte length doesn't match the stored dim.
func decodeVector(raw []byte, dim int) ([]float32, bool) {
	if dim <= 0 || len(raw) != dim*4 {
		return nil, false
	}
	out := make([]float32, dim)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, true
}
