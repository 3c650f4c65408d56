package view

// DragFactor scales pointer movement into scroll movement.
const DragFactor = 2

// Drag converts a press-move-release pointer sequence over a scrollable
// table wrapper into horizontal scroll offsets.
type Drag struct {
	// Max bounds the scroll offset when positive.
	Max int

	down        bool
	startX      int
	startScroll int
}

// Down starts a drag at pointer x with the wrapper scrolled to scroll.
func (d *Drag) Down(x, scroll int) {
	d.down = true
	d.startX = x
	d.startScroll = scroll
}

// Move returns the scroll offset for pointer x. ok is false when no drag is
// in progress.
func (d *Drag) Move(x int) (scroll int, ok bool) {
	if !d.down {
		return 0, false
	}
	scroll = d.startScroll - (x-d.startX)*DragFactor
	if scroll < 0 {
		scroll = 0
	}
	if d.Max > 0 && scroll > d.Max {
		scroll = d.Max
	}
	return scroll, true
}

func (d *Drag) Up() {
	d.down = false
}

// Leave ends the drag when the pointer leaves the wrapper.
func (d *Drag) Leave() {
	d.down = false
}

func (d *Drag) Pressed() bool {
	return d.down
}

func (d *Drag) Cursor() string {
	if d.down {
		return "grabbing"
	}
	return "grab"
}
