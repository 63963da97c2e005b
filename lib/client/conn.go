package client

// Conn is the transport boundary: it carries framed messages and the file
// descriptors that travel out of band with them. Implementations block in
// `ReadMsg` between dispatch cycles; nothing in this package blocks
// anywhere else.
type Conn interface {
	// WriteMsg sends one complete frame. The frame and fds must be fully
	// consumed before WriteMsg returns; the caller drops its buffers after.
	WriteMsg(data []byte, fds []int) error

	// ReadMsg returns one complete frame, header included, with any file
	// descriptors received alongside it.
	ReadMsg() (data []byte, fds []int, err error)

	Close() error
}
