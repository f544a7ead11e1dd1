package signatures

import "testing"

func TestOriginValidate(t *testing.T) {
	tests := []struct {
		name    string
		origin  Origin
		wantErr bool
	}{
		{"top-left", OriginTopLeft, false},
		{"bottom-left", OriginBottomLeft, false},
		{"empty", Origin(""), true},
		{"unknown", Origin("center"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.origin.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestToPDFSpace(t *testing.T) {
	letter := PageGeometry{WidthPts: 612, HeightPts: 792}

	tests := []struct {
		name           string
		x, y           float64
		geo            PageGeometry
		origin         Origin
		drawableHeight float64
		wantX, wantY   float64
	}{
		{"top-left flips y", 100, 700, letter, OriginTopLeft, 50, 100, 42},
		{"top-left at page top", 0, 0, letter, OriginTopLeft, 50, 0, 742},
		{"top-left zero height drawable", 10, 100, letter, OriginTopLeft, 0, 10, 692},
		{"bottom-left passes through", 100, 700, letter, OriginBottomLeft, 50, 100, 700},
		{"bottom-left ignores drawable height", 25, 25, letter, OriginBottomLeft, 999, 25, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := ToPDFSpace(tc.x, tc.y, tc.geo, tc.origin, tc.drawableHeight)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("got (%v, %v), want (%v, %v)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}
