package buffer

import (
	"os"

	"github.com/kurasadb/kurasa/storage/disk"
	"github.com/kurasadb/kurasa/util"
)

// POOL_SIZE is the default pool capacity, about 4 MiB of resident pages.
const POOL_SIZE = 1000

// diskManager is the slice of the async disk manager the pool drives. The
// pool submits one operation at a time and waits for its single completion
// before touching any bookkeeping.
type diskManager interface {
	ReadPage(frameIndex int) error
	WritePage(frameIndex int) error
	WaitForCompletions(n int) error
	Close() error
}

// BufferPool caches pages from a flat backing file in a fixed set of
// frames. freeList and the values of pageTable always partition the frame
// indices: every frame is either unbound or bound to exactly one page. A
// bound frame stays bound for the pool's lifetime; no eviction happens.
//
// The pool is single-threaded and carries no internal locking.
type BufferPool struct {
	frames    []*Frame
	pageTable map[int64]int
	freeList  []int
	replacer  Replacer
	disk      diskManager
}

// New builds a pool of the default capacity over file, registering the
// frame storage with a fresh async disk manager.
func New(file *os.File) (*BufferPool, error) {
	frameBuffers := NewFrameStorage(POOL_SIZE)

	dm, err := disk.NewAsyncManager(file, frameBuffers)
	if err != nil {
		return nil, err
	}

	return NewBufferPool(frameBuffers, NewLruReplacer(), dm), nil
}

// NewFrameStorage allocates n page buffers. The slices are handed to both
// the disk manager (for registration) and the pool (as frame memory), so
// they must never be grown or reallocated afterwards.
func NewFrameStorage(n int) [][]byte {
	buffers := make([][]byte, n)
	for i := range buffers {
		buffers[i] = make([]byte, disk.PAGE_SIZE)
	}

	return buffers
}

func NewBufferPool(frameBuffers [][]byte, replacer Replacer, dm diskManager) *BufferPool {
	frames := make([]*Frame, len(frameBuffers))
	freeList := make([]int, len(frameBuffers))

	for i, buf := range frameBuffers {
		frames[i] = &Frame{
			id:     i,
			pageId: disk.INVALID_PAGE_ID,
			Data:   buf,
		}
		freeList[i] = i
	}

	return &BufferPool{
		frames:    frames,
		pageTable: make(map[int64]int),
		freeList:  freeList,
		replacer:  replacer,
		disk:      dm,
	}
}

// GetPage returns the frame holding pageId, fetching it from disk on a
// miss. A miss takes the most recently freed frame; with every frame bound
// the call fails with NoFreePagesError and the pool is left untouched.
func (b *BufferPool) GetPage(pageId int64) (*Frame, error) {
	if id, ok := b.pageTable[pageId]; ok {
		frame := b.frames[id]

		b.replacer.RecordAccess(id)
		b.replacer.SetEvictable(id, false)
		return frame, nil
	}

	if len(b.freeList) == 0 {
		return nil, util.NewNoFreePagesError(pageId)
	}

	// last freed, first reused
	id := b.freeList[len(b.freeList)-1]
	b.freeList = b.freeList[:len(b.freeList)-1]
	frame := b.frames[id]

	if err := b.fetch(id); err != nil {
		// keep freeList/pageTable a valid partition of the frames
		b.freeList = append(b.freeList, id)
		return nil, err
	}

	frame.pageId = pageId
	b.pageTable[pageId] = id

	b.replacer.RecordAccess(id)
	b.replacer.SetEvictable(id, false)
	return frame, nil
}

// FlushPage persists the bound frame's current bytes to disk. Flushing a
// page the pool doesn't hold is a no-op, not an error.
func (b *BufferPool) FlushPage(pageId int64) error {
	id, ok := b.pageTable[pageId]
	if !ok {
		return nil
	}

	if err := b.disk.WritePage(id); err != nil {
		return err
	}
	if err := b.disk.WaitForCompletions(1); err != nil {
		return err
	}

	b.frames[id].dirty = false
	return nil
}

// Close tears down the disk session. The pool must not be used afterwards.
func (b *BufferPool) Close() error {
	return b.disk.Close()
}

func (b *BufferPool) fetch(frameId int) error {
	if err := b.disk.ReadPage(frameId); err != nil {
		return err
	}

	return b.disk.WaitForCompletions(1)
}
