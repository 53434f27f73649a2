package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRgbToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		full    hsv // HueScaleFull
		halfHue int // hue on HueScaleHalf
	}{
		{"red", 255, 0, 0, hsv{0, 255, 255}, 0},
		{"yellow", 255, 255, 0, hsv{43, 255, 255}, 30},
		{"green", 0, 255, 0, hsv{85, 255, 255}, 60},
		{"cyan", 0, 255, 255, hsv{128, 255, 255}, 90},
		{"blue", 0, 0, 255, hsv{171, 255, 255}, 120},
		{"magenta", 255, 0, 255, hsv{213, 255, 255}, 150},
		{"gold", 255, 215, 0, hsv{36, 255, 255}, 25},
		{"orange", 200, 100, 50, hsv{14, 191, 200}, 10},
		{"white", 255, 255, 255, hsv{0, 0, 255}, 0},
		{"gray", 128, 128, 128, hsv{0, 0, 128}, 0},
		{"black", 0, 0, 0, hsv{0, 0, 0}, 0},
		{"hue wraps to zero", 255, 0, 1, hsv{0, 255, 255}, 0},
		{"negative hue wraps to the top", 10, 0, 9, hsv{218, 255, 10}, 153},
		// 255*190/253 = 191.502; the 12-bit saturation table rounds it down.
		{"fixed point saturation", 253, 63, 63, hsv{0, 191, 253}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.full, rgbToHSV(tt.r, tt.g, tt.b, HueScaleFull))

			half := rgbToHSV(tt.r, tt.g, tt.b, HueScaleHalf)
			assert.Equal(t, tt.halfHue, half.H)
			assert.Equal(t, tt.full.S, half.S)
			assert.Equal(t, tt.full.V, half.V)
		})
	}
}

func TestRgbToHSV_Ranges(t *testing.T) {
	for _, scale := range []int{HueScaleFull, HueScaleHalf} {
		for r := 0; r < 256; r += 5 {
			for g := 0; g < 256; g += 3 {
				for b := 0; b < 256; b += 7 {
					got := rgbToHSV(uint8(r), uint8(g), uint8(b), scale)
					if got.H < 0 || got.H >= scale || got.S < 0 || got.S > 255 {
						t.Fatalf("rgb(%d,%d,%d) scale %d out of range: %+v", r, g, b, scale, got)
					}
				}
			}
		}
	}
}

func TestDivTables(t *testing.T) {
	assert.Equal(t, 0, satDiv[0])
	assert.Equal(t, 4096, satDiv[255])
	assert.Equal(t, 4128, satDiv[253])
	assert.Equal(t, 685, hueDiv[HueScaleFull][255])
	assert.Equal(t, 482, hueDiv[HueScaleHalf][255])
	assert.Equal(t, 174763, hueDiv[HueScaleFull][1])
}
