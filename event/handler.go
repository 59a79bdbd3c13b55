package event

import "bytes"

// Handler handles events emitted by the play mode. Handle is called synchronously from within an update, so
// implementations must not call back into the mode.
type Handler interface {
	Handle(ev Event)
}

// NopHandler ignores all events.
type NopHandler struct{}

func (NopHandler) Handle(Event) {}

// HandlerFunc is a function used as a Handler.
type HandlerFunc func(ev Event)

func (f HandlerFunc) Handle(ev Event) {
	f(ev)
}

// Recorder is a Handler encoding every event it handles into a single recording, which may be decoded again
// using DecodeRecording.
type Recorder struct {
	buf   bytes.Buffer
	count int
}

func (r *Recorder) Handle(ev Event) {
	r.header()
	r.buf.Write(ev.Encode())
	r.count++
}

// Len returns the amount of events recorded.
func (r *Recorder) Len() int {
	return r.count
}

// Bytes returns the recording. The slice is only valid until the next call to Handle.
func (r *Recorder) Bytes() []byte {
	r.header()
	return r.buf.Bytes()
}

func (r *Recorder) header() {
	if r.buf.Len() == 0 {
		WriteRecordingHeader(&r.buf)
	}
}

// Multi returns a handler passing every event to each of the handlers passed, in order.
func Multi(handlers ...Handler) Handler {
	return HandlerFunc(func(ev Event) {
		for _, h := range handlers {
			h.Handle(ev)
		}
	})
}
