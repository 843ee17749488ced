package viewer

import (
	"image/color"
	"testing"
)

func TestApplyOpacityPreservesColorChannels(t *testing.T) {
	// Half-transparent pure red. The premultiplied view already halves the
	// red channel; scaling alpha must not halve it again.
	in := color.NRGBA{R: 0xff, A: 0x80}

	out, ok := applyOpacity(in, 0.5).(color.NRGBA64)
	if !ok {
		t.Fatalf("unexpected color type %T", applyOpacity(in, 0.5))
	}
	if out.R != 0xffff {
		t.Errorf("red channel = %#04x, want 0xffff", out.R)
	}
	if want := uint16(float64(0x8080) * 0.5); out.A != want {
		t.Errorf("alpha = %#04x, want %#04x", out.A, want)
	}
}

func TestApplyOpacityPassthrough(t *testing.T) {
	in := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	if got := applyOpacity(in, 1); got != color.Color(in) {
		t.Errorf("full opacity should return the color unchanged, got %v", got)
	}
	if got := applyOpacity(nil, 0.5); got != color.Color(color.Transparent) {
		t.Errorf("nil color should map to transparent, got %v", got)
	}
}
