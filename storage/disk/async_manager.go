package disk

import (
	"fmt"
	"os"

	"github.com/kurasadb/kurasa/util"
)

const (
	PAGE_SIZE = 4096

	// SQ_DEPTH bounds how many submissions can be queued before
	// ReadPage/WritePage fail instead of blocking.
	SQ_DEPTH = 1024

	INVALID_PAGE_ID = -1
)

type opKind = int

const (
	opRead opKind = iota
	opWrite
)

type request struct {
	handle int
	kind   opKind
}

type completion struct {
	handle int
	err    error
}

// AsyncManager owns the backing file and the asynchronous I/O session over
// it. Every frame buffer is registered once at startup under a stable
// integer handle equal to its frame index; submissions reference buffers by
// handle only, and the session transfers data in place, straight between the
// registered buffer and the file.
type AsyncManager struct {
	file       *os.File
	registered [][]byte
	submitCh   chan request
	completeCh chan completion
	workerDone chan struct{}
	closed     bool
}

// NewAsyncManager opens the I/O session and registers each of the frame
// buffers. Each buffer must be exactly one page long; buffer i serves frame
// index i for the whole session.
func NewAsyncManager(file *os.File, frameBuffers [][]byte) (*AsyncManager, error) {
	if file == nil {
		return nil, util.NewInitError("async manager needs a backing file", nil)
	}

	registered := make([][]byte, len(frameBuffers))
	for i, buf := range frameBuffers {
		if len(buf) != PAGE_SIZE {
			return nil, util.NewInitError(
				fmt.Sprintf("buffer %d is %d bytes, want %d", i, len(buf), PAGE_SIZE), nil)
		}
		registered[i] = buf
	}

	m := &AsyncManager{
		file:       file,
		registered: registered,
		submitCh:   make(chan request, SQ_DEPTH),
		completeCh: make(chan completion, SQ_DEPTH),
		workerDone: make(chan struct{}),
	}

	go m.run()
	return m, nil
}

// ReadPage submits a read of one page at offset frameIndex * PAGE_SIZE into
// the registered buffer for frameIndex. It queues the operation and returns;
// call WaitForCompletions to observe the result.
func (m *AsyncManager) ReadPage(frameIndex int) error {
	return m.submit(frameIndex, opRead)
}

// WritePage submits a write of the registered buffer's current contents to
// offset frameIndex * PAGE_SIZE.
func (m *AsyncManager) WritePage(frameIndex int) error {
	return m.submit(frameIndex, opWrite)
}

func (m *AsyncManager) submit(handle int, kind opKind) error {
	if m.closed {
		return util.NewSubmissionError("session is closed", nil)
	}

	if handle < 0 || handle >= len(m.registered) {
		return util.NewSubmissionError(
			fmt.Sprintf("no registered buffer for frame %d", handle), nil)
	}

	select {
	case m.submitCh <- request{handle: handle, kind: kind}:
		return nil
	default:
		return util.NewSubmissionError("submission queue is full", nil)
	}
}

// WaitForCompletions blocks until n completions have been observed. A
// completion carrying a failure aborts the wait immediately.
func (m *AsyncManager) WaitForCompletions(n int) error {
	for i := 0; i < n; i++ {
		c, ok := <-m.completeCh
		if !ok {
			return util.NewWaitError("session closed while waiting", nil)
		}
		if c.err != nil {
			return util.NewWaitError(
				fmt.Sprintf("i/o on frame %d failed", c.handle), c.err)
		}
	}

	return nil
}

// Size writes the backing file's size in bytes into dest.
func (m *AsyncManager) Size(dest *int64) error {
	if dest == nil {
		return &util.KurasaError{Message: "size query needs a destination"}
	}

	info, err := m.file.Stat()
	if err != nil {
		return &util.KurasaError{Message: "stat on backing file failed", Err: err}
	}

	*dest = info.Size()
	return nil
}

// Close drains the session and releases the file descriptor. Callable once;
// using the manager after Close fails at submission time.
func (m *AsyncManager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	close(m.submitCh)
	<-m.workerDone
	close(m.completeCh)

	return m.file.Close()
}

func (m *AsyncManager) run() {
	defer close(m.workerDone)

	for req := range m.submitCh {
		buf := m.registered[req.handle]
		offset := int64(req.handle) * PAGE_SIZE

		var err error
		if req.kind == opWrite {
			_, err = m.file.WriteAt(buf, offset)
		} else {
			_, err = m.file.ReadAt(buf, offset)
		}

		m.completeCh <- completion{handle: req.handle, err: err}
	}
}
