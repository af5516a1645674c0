package transport

import "sync"

// AsyncTransport wraps another transport and runs it on its own goroutine so
// the caller never blocks. The at-most-once completion guarantee of the
// inner transport is reinforced with a sync.Once, so even a misbehaving
// inner implementation cannot fire done twice.
type AsyncTransport struct {
	inner Transport
}

// NewAsyncTransport создает неблокирующий транспорт поверх inner.
func NewAsyncTransport(inner Transport) *AsyncTransport {
	return &AsyncTransport{inner: inner}
}

// PostJSON returns immediately; done fires later on a separate goroutine.
func (t *AsyncTransport) PostJSON(body []byte, cfg Config, done func(Result)) {
	var once sync.Once
	go t.inner.PostJSON(body, cfg, func(res Result) {
		once.Do(func() { done(res) })
	})
}
