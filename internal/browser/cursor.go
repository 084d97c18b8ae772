package browser

// Cursor is a selected index into a visible list of length n. Every
// operation that takes n leaves index < n, or 0 when n == 0.
type Cursor struct {
	index int
}

// Index returns the raw index. It is only meaningful after a Clamp against
// the current length.
func (c Cursor) Index() int {
	return c.index
}

// MoveUp moves one row up, stopping at the first row.
func (c *Cursor) MoveUp() {
	if c.index > 0 {
		c.index--
	}
}

// MoveDown moves one row down, stopping at the last of n rows.
func (c *Cursor) MoveDown(n int) {
	if c.index < n-1 {
		c.index++
	}
	c.Clamp(n)
}

// Top jumps to the first row.
func (c *Cursor) Top() {
	c.index = 0
}

// Bottom jumps to the last of n rows.
func (c *Cursor) Bottom(n int) {
	c.index = n - 1
	c.Clamp(n)
}

// Set places the cursor at i, clamped to n rows.
func (c *Cursor) Set(i, n int) {
	c.index = i
	c.Clamp(n)
}

// Clamp must follow any change to the length of the visible list.
func (c *Cursor) Clamp(n int) {
	switch {
	case n <= 0 || c.index < 0:
		c.index = 0
	case c.index >= n:
		c.index = n - 1
	}
}

// Selected returns the index for a list of n rows, or false when the
// list is empty.
func (c Cursor) Selected(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	if c.index >= n {
		return n - 1, true
	}
	return c.index, true
}
