package pool

import "sync"

const defaultByteSliceCapacity = 64

// ByteSlicePool hands out zero-length scratch buffers.
type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlicePool = &ByteSlicePool{}

func ByteSlice() *ByteSlicePool {
	return byteSlicePool
}

func (p *ByteSlicePool) Get() []byte {
	return p.GetCapacity(defaultByteSliceCapacity)
}

// GetCapacity returns an empty slice that can hold at least n bytes.
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	if v, ok := p.pool.Get().(*[]byte); ok && cap(*v) >= n {
		return (*v)[:0]
	}
	return make([]byte, 0, max(n, defaultByteSliceCapacity))
}

func (p *ByteSlicePool) Put(b []byte) {
	if cap(b) == 0 {
		return
	}
	b = b[:0]
	p.pool.Put(&b)
}
