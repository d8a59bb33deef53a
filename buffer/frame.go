package buffer

// Frame is one pool slot. Data aliases the buffer registered with the disk
// manager, so reads land in place and callers mutate the page bytes
// directly. A frame's content is undefined until its first fetch.
type Frame struct {
	id     int
	pageId int64
	dirty  bool
	Data   []byte
}

func (f *Frame) Id() int {
	return f.id
}

// PageId is the page currently bound to this frame, INVALID_PAGE_ID while free.
func (f *Frame) PageId() int64 {
	return f.pageId
}

// MarkDirty records that the caller mutated Data. A successful flush clears
// it. Flushing does not consult the flag; it exists for eviction policies
// that want to skip clean victims.
func (f *Frame) MarkDirty() {
	f.dirty = true
}

func (f *Frame) IsDirty() bool {
	return f.dirty
}
