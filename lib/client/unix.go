package client

import (
	"net"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/waygo/waygo/lib/wire"
)

// UnixConn is the one real transport a client needs: a unix stream socket
// with SCM_RIGHTS for the descriptor side channel.
type UnixConn struct {
	conn *net.UnixConn
}

// Dial connects to the display socket. An empty path falls back to
// $WAYLAND_DISPLAY under $XDG_RUNTIME_DIR, "wayland-0" by default.
func Dial(path string) (*UnixConn, error) {
	if path == "" {
		name := os.Getenv("WAYLAND_DISPLAY")
		if name == "" {
			name = "wayland-0"
		}
		path = filepath.Join(os.Getenv("XDG_RUNTIME_DIR"), name)
	}

	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, errors.Wrap(err, "dial display socket")
	}

	return NewUnixConn(conn), nil
}

func NewUnixConn(conn *net.UnixConn) *UnixConn {
	return &UnixConn{conn: conn}
}

func (c *UnixConn) WriteMsg(data []byte, fds []int) error {
	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}

	n, oobn, err := c.conn.WriteMsgUnix(data, oob, nil)
	if err != nil {
		return errors.Wrap(err, "sendmsg")
	}
	if n < len(data) || oobn < len(oob) {
		return errors.New("short sendmsg")
	}

	return nil
}

func (c *UnixConn) ReadMsg() ([]byte, []int, error) {
	hdr := make([]byte, wire.HeaderSize)
	fds, err := c.readFull(hdr)
	if err != nil {
		return nil, nil, err
	}

	h, err := wire.ParseHeader(hdr)
	if err != nil {
		return nil, nil, err
	}

	frame := make([]byte, h.Size)
	copy(frame, hdr)
	more, err := c.readFull(frame[wire.HeaderSize:])
	if err != nil {
		return nil, nil, err
	}

	return frame, append(fds, more...), nil
}

func (c *UnixConn) Close() error {
	return c.conn.Close()
}

// readFull fills p, collecting any SCM_RIGHTS descriptors that arrive with
// the data.
func (c *UnixConn) readFull(p []byte) ([]int, error) {
	var fds []int
	oob := make([]byte, 1024)

	for n := 0; n < len(p); {
		nr, oobn, _, _, err := c.conn.ReadMsgUnix(p[n:], oob)
		if err != nil {
			return nil, errors.Wrap(err, "recvmsg")
		}
		n += nr

		if oobn < 1 {
			continue
		}
		scms, err := unix.ParseSocketControlMessage(oob[:oobn])
		if err != nil {
			return nil, errors.Wrap(err, "parse control message")
		}
		for _, scm := range scms {
			got, err := unix.ParseUnixRights(&scm)
			if err != nil {
				continue
			}
			fds = append(fds, got...)
		}
	}

	return fds, nil
}
