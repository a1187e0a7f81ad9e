package renderer

import (
	"encoding/binary"
	"math"
)

// blobReader is a moving cursor over a song blob. Every read advances the
// cursor by the width of the value read. It performs no bounds checking:
// the blob is trusted producer output from a tracker tool outside this
// module, and this reader is optimized for size, not defensiveness.
type blobReader struct {
	data []byte
	pos  int
}

func newBlobReader(data []byte) *blobReader {
	return &blobReader{data: data}
}

// readByte returns the next byte and advances the cursor by one.
func (r *blobReader) readByte() byte {
	b := r.data[r.pos]
	r.pos++
	return b
}

// readInt32 returns the next little-endian int32 and advances by four.
func (r *blobReader) readInt32() int32 {
	v := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return v
}

// readFloat32 returns the next little-endian float32 and advances by four.
func (r *blobReader) readFloat32() float32 {
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return v
}

// readFloat64 returns the next little-endian float64 and advances by eight.
func (r *blobReader) readFloat64() float64 {
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v
}

// readChunk returns a view of the next n bytes and advances by n. The
// returned slice aliases the blob; its lifetime is tied to it.
func (r *blobReader) readChunk(n int32) []byte {
	chunk := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return chunk
}
