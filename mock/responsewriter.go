package mock

import (
	"net"

	"github.com/miekg/dns"
)

var (
	local  = NewNetAddr("udp", "127.0.0.1:53")
	remote = NewNetAddr("udp", "127.0.0.2:4056")
)

// ResponseWriter implements dns.ResponseWriter by capturing the written message for
// later inspection by the test.
type ResponseWriter struct {
	m *dns.Msg
}

func (t *ResponseWriter) Reset() {
	t.m = nil
}

// Get returns the most recently written response, if any, then clears it.
func (t *ResponseWriter) Get() *dns.Msg {
	m := t.m
	t.m = nil

	return m
}

func (t *ResponseWriter) LocalAddr() net.Addr {
	return local
}

func (t *ResponseWriter) RemoteAddr() net.Addr {
	return remote
}

func (t *ResponseWriter) WriteMsg(m *dns.Msg) error {
	t.m = m

	return nil
}

func (t *ResponseWriter) Write(b []byte) (int, error) {
	panic("mock.ResponseWriter does not expect raw Write() calls")
}

func (t *ResponseWriter) Close() error {
	return nil
}

func (t *ResponseWriter) TsigStatus() error {
	return nil
}

func (t *ResponseWriter) TsigTimersOnly(bool) {
}

func (t *ResponseWriter) Hijack() {
}
