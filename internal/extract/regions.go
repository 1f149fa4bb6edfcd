package extract

// Area is a rectangle in PDF points with a top-left origin, the convention
// table extraction tools use for page regions.
type Area struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Region is an area carved into cells at fixed x boundaries. A region with
// n column boundaries yields rows of n+1 cells.
type Region struct {
	Area    Area
	Columns []float64
}

// Layout is the extraction geometry for one statement layout. Period and
// Summary are first-page metadata boxes; layouts without statement metadata
// leave them nil.
type Layout struct {
	Transactions Region
	Period       *Region
	Summary      *Region
}

// Layouts maps format names to their extraction geometry. The rectangles
// are calibrated against the printed statements and are configuration, not
// detection: a layout change upstream means recalibrating these numbers.
var Layouts = map[string]Layout{
	"account": {
		Transactions: Region{
			Area:    Area{Top: 48, Left: 55, Bottom: 800, Right: 542},
			Columns: []float64{86, 320, 390, 470},
		},
	},
	"card": {
		Transactions: Region{
			Area:    Area{Top: 94, Left: 40, Bottom: 803, Right: 573},
			Columns: []float64{100, 500},
		},
		Period: &Region{
			Area:    Area{Top: 110, Left: 348, Bottom: 180, Right: 573},
			Columns: []float64{440},
		},
		Summary: &Region{
			Area:    Area{Top: 233, Left: 0, Bottom: 345, Right: 297},
			Columns: []float64{200},
		},
	},
}
