package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds scratch buffers for encoding events. Buffers must be Reset after Get, and their contents
// copied out before Put.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}
