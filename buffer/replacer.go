package buffer

const INVALID_FRAME_ID = -1

// Replacer tracks frame accesses and picks eviction victims among the
// evictable ones. The pool records accesses here on every fetch; actually
// asking for a victim is left to callers, so policies stay independently
// testable.
type Replacer interface {
	RecordAccess(frameId int)
	SetEvictable(frameId int, evictable bool)
	ChooseVictim() (int, bool)
	Size() int
}

func NewLruReplacer() *lruReplacer {
	head := &lruNode{frameId: INVALID_FRAME_ID}
	tail := &lruNode{frameId: INVALID_FRAME_ID}

	head.next = tail
	tail.prev = head

	return &lruReplacer{
		nodeStore: map[int]*lruNode{},
		head:      head,
		tail:      tail,
	}
}

// RecordAccess moves frameId to the front of the recency list, tracking it
// first if needed. New frames start out non-evictable.
func (lru *lruReplacer) RecordAccess(frameId int) {
	node, ok := lru.nodeStore[frameId]
	if !ok {
		node = &lruNode{frameId: frameId}
		lru.nodeStore[frameId] = node
	} else {
		lru.removeNode(node)
	}

	lru.addToFront(node)
}

func (lru *lruReplacer) SetEvictable(frameId int, evictable bool) {
	node, ok := lru.nodeStore[frameId]
	if !ok {
		return
	}

	if node.evictable != evictable {
		node.evictable = evictable
		if evictable {
			lru.currSize++
		} else {
			lru.currSize--
		}
	}
}

// ChooseVictim returns the least recently used evictable frame and stops
// tracking it. Reports false when nothing is evictable.
func (lru *lruReplacer) ChooseVictim() (int, bool) {
	for node := lru.tail.prev; node != lru.head; node = node.prev {
		if node.evictable {
			lru.removeNode(node)
			delete(lru.nodeStore, node.frameId)
			lru.currSize--
			return node.frameId, true
		}
	}

	return INVALID_FRAME_ID, false
}

// Size is the number of evictable frames currently tracked.
func (lru *lruReplacer) Size() int {
	return lru.currSize
}

func (lru *lruReplacer) removeNode(node *lruNode) {
	back := node.prev
	front := node.next

	back.next = front
	front.prev = back
}

func (lru *lruReplacer) addToFront(node *lruNode) {
	tmp := lru.head.next
	lru.head.next = node
	node.prev = lru.head
	node.next = tmp
	tmp.prev = node
}

type lruReplacer struct {
	nodeStore map[int]*lruNode
	currSize  int
	head      *lruNode
	tail      *lruNode
}

type lruNode struct {
	prev      *lruNode
	next      *lruNode
	frameId   int
	evictable bool
}
