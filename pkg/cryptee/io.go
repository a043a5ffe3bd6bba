package cryptee

import (
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a Cipher with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and restart the keystream from the key.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a Cipher with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and restart the keystream from the key.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	cipher *Cipher
	ks     *keystream
}

// NewReader constructs a Reader that transforms all bytes read from r.
// Reading the whole stream yields the same bytes as Crypt over the whole stream, regardless of how reads are sized.
func (c *Cipher) NewReader(r io.Reader) Reader {
	return &reader{
		source: r,
		cipher: c,
		ks:     c.keystream(),
	}
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	r.ks.XORKeyStream(out[:n], out[:n])
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.ks = r.cipher.keystream()
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	cipher *Cipher
	ks     *keystream
	buf    []byte
}

// NewWriter constructs a Writer that transforms all bytes before writing them to w.
func (c *Cipher) NewWriter(w io.Writer) Writer {
	return &writer{
		target: w,
		cipher: c,
		ks:     c.keystream(),
	}
}

// Write transforms in before passing it to the target.
// The keystream advances by len(in) even if the target accepts fewer bytes, since a short write is reported as an error.
func (w *writer) Write(in []byte) (n int, err error) {
	if cap(w.buf) < len(in) {
		w.buf = make([]byte, len(in))
	}
	buf := w.buf[:len(in)]
	w.ks.XORKeyStream(buf, in)
	n, err = w.target.Write(buf)
	if err == nil && n < len(in) {
		err = io.ErrShortWrite
	}
	return n, err
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.ks = w.cipher.keystream()
}
