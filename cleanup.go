package pool

import (
	"encoding/binary"
	"os"
)

// CleanupHandler is invoked once at Destroy (or earlier, via
// RunCleanupFile) with the node's opaque Data.
type CleanupHandler func(data []byte)

// CleanupNode is a (handler, data) pair run at pool destruction, in
// reverse registration order. Data is a pool-backed byte buffer the
// handler interprets however it likes; Handler is nil until the caller
// sets it, mirroring ngx_pool_cleanup_add returning a node with
// handler left for the caller to assign.
type CleanupNode struct {
	Handler     CleanupHandler
	Data        []byte
	next        *CleanupNode
	isCloseFile bool
}

// RegisterCleanup implements ngx_pool_cleanup_add: allocates a
// dataSize-byte buffer (or none, if dataSize <= 0), prepends a node to
// the cleanup list, and returns it with Handler unset for the caller to
// fill in.
func (p *Pool) RegisterCleanup(dataSize int) (*CleanupNode, error) {
	p.mustNotBeDestroyed()
	data, err := p.cleanupData(dataSize)
	if err != nil {
		return nil, err
	}
	return p.prependCleanup(data), nil
}

// cleanupData allocates dataSize bytes for a cleanup node's payload.
// ngx_pool_cleanup_add calls ngx_palloc(p, size), the full small/large
// dispatcher, rather than ngx_palloc_small directly, so an oversized
// cleanup payload transparently succeeds via the large path instead of
// failing outright.
func (p *Pool) cleanupData(dataSize int) ([]byte, error) {
	if dataSize <= 0 {
		return nil, nil
	}
	return p.allocForCleanup(dataSize)
}

func (p *Pool) allocForCleanup(size int) ([]byte, error) {
	if size <= p.maxSmall {
		return p.allocSmall(size, true)
	}
	return p.allocLarge(size)
}

func (p *Pool) prependCleanup(data []byte) *CleanupNode {
	node := &CleanupNode{Data: data, next: p.cleanupHead}
	p.cleanupHead = node
	return node
}

// RegisterCloseFileCleanup registers the bundled close-file handler for
// fd, the Go equivalent of ngx_pool_cleanup_file / ngx_pool_cleanup_add.
// RunCleanupFile can later target this exact node by fd.
func (p *Pool) RegisterCloseFileCleanup(fd int) (*CleanupNode, error) {
	p.mustNotBeDestroyed()
	data, err := p.allocForCleanup(8)
	if err != nil {
		return nil, err
	}
	binary.LittleEndian.PutUint64(data, uint64(fd))
	node := p.prependCleanup(data)
	node.isCloseFile = true
	node.Handler = p.closeFileHandler
	return node, nil
}

// RegisterDeleteFileCleanup registers the bundled delete-file handler:
// on invocation it removes name (absence of the target is not an
// error) and then closes fd - the Go equivalent of ngx_pool_delete_file.
func (p *Pool) RegisterDeleteFileCleanup(fd int, name string) (*CleanupNode, error) {
	p.mustNotBeDestroyed()
	nameBytes := []byte(name)
	data, err := p.allocForCleanup(8 + len(nameBytes))
	if err != nil {
		return nil, err
	}
	binary.LittleEndian.PutUint64(data[:8], uint64(fd))
	copy(data[8:], nameBytes)
	node := p.prependCleanup(data)
	node.Handler = p.deleteFileHandler
	return node, nil
}

func (p *Pool) closeFileHandler(data []byte) {
	fd := int(binary.LittleEndian.Uint64(data))
	p.debugf("file cleanup", "fd", fd)
	if err := closeFD(fd); err != nil {
		p.errorf("close file cleanup failed", "fd", fd, "err", err)
	}
}

func (p *Pool) deleteFileHandler(data []byte) {
	fd := int(binary.LittleEndian.Uint64(data[:8]))
	name := string(data[8:])
	p.debugf("delete file cleanup", "fd", fd, "name", name)
	if name != "" {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			p.errorf("delete file cleanup failed", "name", name, "err", err)
		}
	}
	if err := closeFD(fd); err != nil {
		p.errorf("close file cleanup failed", "fd", fd, "err", err)
	}
}

func closeFD(fd int) error {
	return os.NewFile(uintptr(fd), "").Close()
}

// RunCleanupFile implements ngx_pool_run_cleanup_file: finds the first
// cleanup node registered via RegisterCloseFileCleanup for fd, invokes
// it immediately, and clears its handler so Destroy won't run it again.
// Other nodes (including delete-file cleanups) are skipped even if
// their fd matches, matching ngx_pool_run_cleanup_file's exact
// handler-identity comparison.
func (p *Pool) RunCleanupFile(fd int) {
	p.mustNotBeDestroyed()
	for c := p.cleanupHead; c != nil; c = c.next {
		if !c.isCloseFile || c.Handler == nil {
			continue
		}
		if int(binary.LittleEndian.Uint64(c.Data)) == fd {
			c.Handler(c.Data)
			c.Handler = nil
			return
		}
	}
}
