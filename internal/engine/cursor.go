package engine

import "sync"

// cursorState は実ハードウェアから観測した最新のペン位置を保持する
type cursorState struct {
	mu sync.Mutex
	x  int32
	y  int32
}

func (c *cursorState) setX(v int32) {
	c.mu.Lock()
	c.x = v
	c.mu.Unlock()
}

func (c *cursorState) setY(v int32) {
	c.mu.Lock()
	c.y = v
	c.mu.Unlock()
}

func (c *cursorState) get() (int32, int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y
}
