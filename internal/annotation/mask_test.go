package annotation

import "testing"

func TestMaskPaintEraseContains(t *testing.T) {
	m := NewMask(100, 100)
	if !m.Empty() {
		t.Fatalf("fresh mask must be empty")
	}
	m.Paint(50, 50, 10)
	if !m.Contains(50, 50) || !m.Contains(55, 50) {
		t.Fatalf("painted brush area must be contained")
	}
	if m.Contains(70, 50) {
		t.Fatalf("pixel outside the brush must stay clear")
	}
	m.Erase(50, 50, 20)
	if !m.Empty() {
		t.Fatalf("erasing the whole brush must empty the mask")
	}
}

func TestMaskStrokeIsContinuous(t *testing.T) {
	m := NewMask(200, 100)
	m.PaintStroke(10, 50, 150, 50, 3, false)
	for x := 10; x <= 150; x += 10 {
		if !m.Contains(float64(x), 50) {
			t.Fatalf("gap in stroke at x=%d", x)
		}
	}
}

func TestMaskTranslateAndBounds(t *testing.T) {
	m := NewMask(100, 100)
	m.Paint(20, 20, 1)
	m.Translate(30, 10)
	if m.Contains(20, 20) {
		t.Fatalf("old position must be clear after translate")
	}
	if !m.Contains(50, 30) {
		t.Fatalf("content must move with the translate")
	}

	b := m.TightBounds()
	if b.Empty() {
		t.Fatalf("tight bounds of painted mask must not be empty")
	}
	if !(b.Min.X >= 48 && b.Max.X <= 53 && b.Min.Y >= 28 && b.Max.Y <= 33) {
		t.Fatalf("unexpected tight bounds %v", b)
	}

	// Content pushed outside the raster is dropped.
	m.Translate(500, 0)
	if !m.Empty() {
		t.Fatalf("content outside the raster must be dropped")
	}
}

func TestMaskOutOfRange(t *testing.T) {
	m := NewMask(10, 10)
	m.Paint(-5, -5, 2)
	m.Paint(100, 100, 2)
	if !m.Empty() {
		t.Fatalf("out-of-raster painting must be clipped")
	}
	if m.Contains(-1, -1) || m.Contains(11, 11) {
		t.Fatalf("out-of-raster lookups must be false")
	}
}
