package imaging

import "testing"

// createMaskWithRect creates a mask with a filled rectangle of ink.
func createMaskWithRect(width, height, x1, y1, x2, y2 int) *Mask {
	m := NewMask(width, height)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestMaskAt_OutOfBounds(t *testing.T) {
	m := createMaskWithRect(10, 10, 0, 0, 10, 10)

	coords := [][2]int{{-1, 5}, {5, -1}, {10, 5}, {5, 10}}
	for _, c := range coords {
		if m.At(c[0], c[1]) {
			t.Errorf("At(%d, %d) out of bounds should be false", c[0], c[1])
		}
	}
}

func TestMaskCount(t *testing.T) {
	m := createMaskWithRect(20, 20, 5, 5, 10, 10)

	if got := m.Count(); got != 25 {
		t.Errorf("Count() = %d, want 25", got)
	}
}

func TestMaskDensity(t *testing.T) {
	m := createMaskWithRect(20, 20, 0, 0, 10, 20)

	if got := m.Density(0, 0, 10, 20); got != 1.0 {
		t.Errorf("Density over filled half = %f, want 1.0", got)
	}
	if got := m.Density(10, 0, 20, 20); got != 0.0 {
		t.Errorf("Density over empty half = %f, want 0.0", got)
	}
	if got := m.Density(0, 0, 20, 20); got != 0.5 {
		t.Errorf("Density over whole mask = %f, want 0.5", got)
	}
}

func TestMaskDensity_EmptyRect(t *testing.T) {
	m := createMaskWithRect(10, 10, 0, 0, 10, 10)

	if got := m.Density(5, 5, 5, 5); got != 0 {
		t.Errorf("Density of empty rect = %f, want 0", got)
	}
	// Clamped fully outside the mask.
	if got := m.Density(50, 50, 60, 60); got != 0 {
		t.Errorf("Density outside mask = %f, want 0", got)
	}
}

func TestErodeRect_RemovesThinStroke(t *testing.T) {
	// 2px wide vertical stroke cannot survive a 5-wide kernel.
	m := createMaskWithRect(20, 20, 9, 0, 11, 20)

	eroded := m.ErodeRect(5, 1)
	if got := eroded.Count(); got != 0 {
		t.Errorf("eroded thin stroke has %d pixels, want 0", got)
	}
}

func TestErodeRect_KeepsWideStroke(t *testing.T) {
	m := createMaskWithRect(40, 20, 5, 9, 35, 11)

	eroded := m.ErodeRect(5, 1)
	if eroded.Count() == 0 {
		t.Error("eroded wide stroke should keep pixels")
	}
	if !eroded.At(20, 9) {
		t.Error("stroke interior should survive erosion")
	}
}

func TestDilateRect_GrowsRegion(t *testing.T) {
	m := NewMask(10, 10)
	m.Set(5, 5, true)

	dilated := m.DilateRect(3, 3)
	if got := dilated.Count(); got != 9 {
		t.Errorf("dilated single pixel has %d pixels, want 9", got)
	}
}

func TestCloseRect_BridgesGap(t *testing.T) {
	// Two horizontal runs with a 3px gap at y=5.
	m := NewMask(40, 10)
	for x := 5; x < 18; x++ {
		m.Set(x, 5, true)
	}
	for x := 21; x < 35; x++ {
		m.Set(x, 5, true)
	}

	closed := m.CloseRect(7, 1)
	for x := 18; x < 21; x++ {
		if !closed.At(x, 5) {
			t.Errorf("gap pixel (%d, 5) not bridged by closing", x)
		}
	}
}

func TestOpenRect_RemovesSpeckle(t *testing.T) {
	m := createMaskWithRect(40, 40, 10, 10, 30, 30)
	m.Set(2, 2, true) // isolated speckle

	opened := m.OpenRect(3, 3)
	if opened.At(2, 2) {
		t.Error("isolated speckle should be removed by opening")
	}
	if !opened.At(20, 20) {
		t.Error("large region interior should survive opening")
	}
}

func TestUnion(t *testing.T) {
	a := createMaskWithRect(10, 10, 0, 0, 5, 10)
	b := createMaskWithRect(10, 10, 5, 0, 10, 10)

	u := a.Union(b)
	if got := u.Count(); got != 100 {
		t.Errorf("union has %d pixels, want 100", got)
	}
}

func TestUnion_NilOther(t *testing.T) {
	a := createMaskWithRect(10, 10, 0, 0, 5, 10)

	u := a.Union(nil)
	if got := u.Count(); got != a.Count() {
		t.Errorf("union with nil has %d pixels, want %d", got, a.Count())
	}
}

func TestToGray(t *testing.T) {
	m := createMaskWithRect(10, 10, 0, 0, 5, 10)

	img := m.ToGray()
	bounds := img.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 10 {
		t.Errorf("gray image is %dx%d, want 10x10", bounds.Dx(), bounds.Dy())
	}
	if img.GrayAt(2, 2).Y != 255 {
		t.Error("ink pixel should render white")
	}
	if img.GrayAt(8, 2).Y != 0 {
		t.Error("background pixel should render black")
	}
}
