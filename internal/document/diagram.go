package document

// Box is an axis-aligned rectangle in PDF user-space units
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (b Box) Width() float64  { return b.X1 - b.X0 }
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

const (
	maxElementWidthRatio = 0.8
	minElementWidth      = 20
	maxRegionHeightRatio = 0.5
	regionPadding        = 5
)

// DiagramRegion unions the figure elements of a page into one crop box.
// Elements at least 80% of the page wide (borders, watermarks) or at most
// 20 units wide are ignored. The union is rejected when taller than half the
// page. Padding is clamped to the page bounds.
func DiagramRegion(pageWidth, pageHeight float64, elements []Box) (Box, bool) {
	var (
		union Box
		found bool
	)

	for _, e := range elements {
		w := e.Width()
		if w >= pageWidth*maxElementWidthRatio || w <= minElementWidth {
			continue
		}
		if !found {
			union = e
			found = true
			continue
		}
		union.X0 = min(union.X0, e.X0)
		union.Y0 = min(union.Y0, e.Y0)
		union.X1 = max(union.X1, e.X1)
		union.Y1 = max(union.Y1, e.Y1)
	}

	if !found || union.Height() > pageHeight*maxRegionHeightRatio {
		return Box{}, false
	}

	return Box{
		X0: max(0, union.X0-regionPadding),
		Y0: max(0, union.Y0-regionPadding),
		X1: min(pageWidth, union.X1+regionPadding),
		Y1: min(pageHeight, union.Y1+regionPadding),
	}, true
}
