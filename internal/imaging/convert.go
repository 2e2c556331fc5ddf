package imaging

// Converter rewrites a BGRA pixel buffer to RGBA in place by swapping
// bytes 0 and 2 of every 4-byte pixel. Implementations never allocate
// and never fail; callers guarantee len(pix) is a multiple of 4.
type Converter interface {
	Convert(pix []byte)
}

// DefaultConverter returns the converter used when callers do not supply
// their own.
func DefaultConverter() Converter {
	return BlockConverter{}
}

const blockBytes = 16

// BlockConverter shuffles four pixels (16 bytes) per step with an
// unrolled swap. Icon bitmaps are usually exact multiples of four pixels
// wide, but any trailing pixels that do not fill a block are handed to
// the scalar path so the contract holds for arbitrary pixel counts.
type BlockConverter struct{}

func (BlockConverter) Convert(pix []byte) {
	n := len(pix) / blockBytes * blockBytes
	for i := 0; i < n; i += blockBytes {
		b := pix[i : i+blockBytes : i+blockBytes]
		b[0], b[2] = b[2], b[0]
		b[4], b[6] = b[6], b[4]
		b[8], b[10] = b[10], b[8]
		b[12], b[14] = b[14], b[12]
	}
	if n < len(pix) {
		ScalarConverter{}.Convert(pix[n:])
	}
}

// ScalarConverter swaps one pixel at a time. It is the guaranteed
// fallback and the reference implementation the block path is tested
// against.
type ScalarConverter struct{}

func (ScalarConverter) Convert(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
