// Package extract carves positioned PDF text into tabular rows. It knows
// nothing about statement semantics: callers point a Region at a page and
// get back rows of cells, clustered by baseline and split at fixed column
// boundaries.
package extract

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/exp/slices"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

const (
	// Baselines within this many points of each other belong to one row.
	rowMergeGap = 2
	// Pieces further apart than this within a cell get a space between
	// them; anything closer is one word split across text runs.
	wordGap = 1.5
	// Height assumed for pages that do not declare a MediaBox.
	a4Height = 841.89
)

// Document is an open PDF ready for region extraction.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path. The caller owns the returned document and
// must Close it.
func Open(path string) (*Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{file: file, reader: reader}, nil
}

func (d *Document) Close() error {
	return d.file.Close()
}

func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Table extracts the region's rows from one page. Pages are numbered from 1.
func (d *Document) Table(pageNum int, region Region) ([]types.Row, error) {
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", pageNum)
	}
	content, err := pageContent(page)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNum, err)
	}
	return carve(content.Text, pageHeight(page), region), nil
}

// Tables extracts the region's rows from every page, in page order.
func (d *Document) Tables(region Region) ([][]types.Row, error) {
	pages := make([][]types.Row, 0, d.NumPages())
	for i := 1; i <= d.NumPages(); i++ {
		rows, err := d.Table(i, region)
		if err != nil {
			return nil, err
		}
		pages = append(pages, rows)
	}
	return pages, nil
}

// pageContent reads the page's positioned text. The pdf library panics on
// content streams it cannot parse, so recover into an error.
func pageContent(page pdf.Page) (content pdf.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return page.Content(), nil
}

// pageHeight resolves the page's MediaBox height, walking up the page tree
// for inherited boxes.
func pageHeight(page pdf.Page) float64 {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		if box := v.Key("MediaBox"); !box.IsNull() && box.Len() == 4 {
			return box.Index(3).Float64() - box.Index(1).Float64()
		}
	}
	return a4Height
}

type piece struct {
	x, w float64
	s    string
}

// carve filters texts to the region, clusters them into baseline rows from
// the top of the page down, and splits each row into cells at the region's
// column boundaries.
func carve(texts []pdf.Text, height float64, region Region) []types.Row {
	buckets := make(map[int][]piece)
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := height - t.Y
		if y < region.Area.Top || y > region.Area.Bottom {
			continue
		}
		if t.X < region.Area.Left || t.X > region.Area.Right {
			continue
		}
		key := int(math.Round(y))
		buckets[key] = append(buckets[key], piece{x: t.X, w: t.W, s: t.S})
	}
	if len(buckets) == 0 {
		return nil
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var rows []types.Row
	var current []piece
	last := keys[0]
	for _, k := range keys {
		if k-last > rowMergeGap {
			rows = append(rows, carveRow(current, region.Columns))
			current = nil
		}
		current = append(current, buckets[k]...)
		last = k
	}
	rows = append(rows, carveRow(current, region.Columns))
	return rows
}

// carveRow orders one baseline's pieces left to right and assigns each to
// the cell whose boundaries contain its starting x.
func carveRow(pieces []piece, columns []float64) types.Row {
	slices.SortFunc(pieces, func(a, b piece) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		}
		return 0
	})

	cells := make([]string, len(columns)+1)
	ends := make([]float64, len(columns)+1)
	for _, p := range pieces {
		i := cellIndex(p.x, columns)
		if cells[i] != "" && p.x-ends[i] > wordGap {
			cells[i] += " "
		}
		cells[i] += p.s
		ends[i] = p.x + p.w
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return types.RowFromStrings(cells...)
}

func cellIndex(x float64, columns []float64) int {
	for i, boundary := range columns {
		if x < boundary {
			return i
		}
	}
	return len(columns)
}
