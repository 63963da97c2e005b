package wire

import (
	"encoding/binary"
	"unsafe"
)

// ByteOrder is the host byte order; both endpoints of a connection share the
// same machine, so frames are packed natively rather than in network order.
var ByteOrder binary.ByteOrder = func() binary.ByteOrder {
	var probe uint16 = 1
	if *(*byte)(unsafe.Pointer(&probe)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()
