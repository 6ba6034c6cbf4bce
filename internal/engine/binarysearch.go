package engine

// BinarySearchIterator bisects an index range [Low, High]. The caller tests
// Mid and moves Lower on success or Higher on failure until HasNext is false.
type BinarySearchIterator struct {
	Low  int
	High int
	Mid  int
}

func NewBinarySearchIterator(low, high int) *BinarySearchIterator {
	b := &BinarySearchIterator{Low: low, High: high}
	b.update()
	return b
}

func (b *BinarySearchIterator) update() {
	b.Mid = b.Low + (b.High-b.Low)/2
}

// HasNext reports whether the range is non-empty.
func (b *BinarySearchIterator) HasNext() bool {
	return b.Low <= b.High
}

// Lower discards Mid and everything above it.
func (b *BinarySearchIterator) Lower() {
	b.High = b.Mid - 1
	b.update()
}

// Higher discards Mid and everything below it.
func (b *BinarySearchIterator) Higher() {
	b.Low = b.Mid + 1
	b.update()
}
