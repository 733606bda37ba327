package stego

// Bit sequences are []byte slices whose elements are 0 or 1, most
// significant bit first.

// BytesToBits expands each payload byte into its 8 bits, MSB first.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// BitsToBytes packs bits back into bytes, 8 at a time. A trailing group
// shorter than 8 bits is dropped.
func BitsToBytes(bits []byte) []byte {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i+j] & 1)
		}
		out = append(out, b)
	}
	return out
}

// IntToBits returns the fixed-width big-endian bit representation of value.
func IntToBits(value uint32, width int) []byte {
	bits := make([]byte, width)
	for i := 0; i < width; i++ {
		bits[width-1-i] = byte((value >> i) & 1)
	}
	return bits
}

// BitsToInt decodes a big-endian bit sequence into an integer.
func BitsToInt(bits []byte) uint32 {
	var v uint32
	for _, b := range bits {
		v = (v << 1) | uint32(b&1)
	}
	return v
}
