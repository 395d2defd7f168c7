package document

import "testing"

func TestDiagramRegion(t *testing.T) {
	const w, h = 600.0, 800.0

	tests := []struct {
		name     string
		elements []Box
		want     Box
		wantOK   bool
	}{
		{
			name:   "no elements",
			wantOK: false,
		},
		{
			name:     "single figure padded",
			elements: []Box{{X0: 100, Y0: 100, X1: 200, Y1: 180}},
			want:     Box{X0: 95, Y0: 95, X1: 205, Y1: 185},
			wantOK:   true,
		},
		{
			name: "union of two figures",
			elements: []Box{
				{X0: 100, Y0: 100, X1: 200, Y1: 180},
				{X0: 250, Y0: 150, X1: 330, Y1: 260},
			},
			want:   Box{X0: 95, Y0: 95, X1: 335, Y1: 265},
			wantOK: true,
		},
		{
			name: "full width border ignored",
			elements: []Box{
				{X0: 0, Y0: 0, X1: 590, Y1: 800},
				{X0: 100, Y0: 100, X1: 200, Y1: 180},
			},
			want:   Box{X0: 95, Y0: 95, X1: 205, Y1: 185},
			wantOK: true,
		},
		{
			name:     "tiny elements ignored",
			elements: []Box{{X0: 10, Y0: 10, X1: 30, Y1: 30}},
			wantOK:   false,
		},
		{
			name: "union taller than half page",
			elements: []Box{
				{X0: 100, Y0: 10, X1: 200, Y1: 60},
				{X0: 100, Y0: 600, X1: 200, Y1: 700},
			},
			wantOK: false,
		},
		{
			name:     "padding clamped to page",
			elements: []Box{{X0: 2, Y0: 1, X1: 598, Y1: 50}},
			wantOK:   false,
		},
		{
			name:     "padding clamped at origin",
			elements: []Box{{X0: 2, Y0: 1, X1: 100, Y1: 50}},
			want:     Box{X0: 0, Y0: 0, X1: 105, Y1: 55},
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiagramRegion(w, h, tt.elements)
			if ok != tt.wantOK {
				t.Fatalf("DiagramRegion() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("DiagramRegion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
