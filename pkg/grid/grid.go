// Package grid converts between linear indices and row-major 2-D coordinates.
package grid

// GetGridCoords returns the column and row of index in a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// GetIndex is the inverse of GetGridCoords.
func GetIndex(x, y, cols int) int {
	return y*cols + x
}

// PixelWord locates pixel (x, y) of a 1-bit-per-pixel bitmap packed into
// 16-bit words, least significant bit leftmost. It returns the word offset
// and the bit within that word.
func PixelWord(x, y, width int) (word int, bit uint) {
	return GetIndex(x/16, y, width/16), uint(x % 16)
}
