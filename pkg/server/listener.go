package server

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// Socket buffer bounds. Requests are small, so the receive buffer is fixed;
// the send buffer scales with the document so a whole response fits in one
// buffer, within reason.
const (
	minSendBufferSize = 32 * 1024
	maxSendBufferSize = 2 * 1024 * 1024
	recvBufferSize    = 32 * 1024
)

// sendBufferSize returns the send-buffer size for a document of the given
// uncompressed length: twice the document, clamped to
// [minSendBufferSize, maxSendBufferSize].
func sendBufferSize(contentLength int) int {
	size := 2 * contentLength
	if size < minSendBufferSize {
		return minSendBufferSize
	}
	if size > maxSendBufferSize {
		return maxSendBufferSize
	}
	return size
}

// newListener binds a TCP listener at addr with tuned socket buffers. The
// options are applied to the listening socket before listen(2), so accepted
// connections inherit them. A rejected setsockopt fails the bind: a server
// that cannot be tuned as requested should not start.
func newListener(ctx context.Context, addr string, sendBuf int) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, sendBuf); err != nil {
					sockErr = fmt.Errorf("failed to set SO_SNDBUF: %w", err)
					return
				}
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, recvBufferSize); err != nil {
					sockErr = fmt.Errorf("failed to set SO_RCVBUF: %w", err)
				}
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}
