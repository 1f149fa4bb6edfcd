package scan

import (
	"golang.org/x/exp/slices"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Column positions shared by every supported layout.
const (
	dateColumn = 0
	descColumn = 1
)

// Format describes one statement table layout: the columns it prints, the
// rows that delimit the table, and how reconstructed records convert into
// transactions. Formats are plain data consumed by a single Scanner state
// machine; they hold no state of their own.
type Format struct {
	// Name keys the format registry.
	Name string

	// Columns is the fixed row arity inside the table.
	Columns int

	// Header is the exact header row that starts consumption on each page.
	Header []string

	// Trailers end the table. A row matches when its populated cells
	// concatenate, spaces stripped, to one of these strings.
	Trailers []string

	// TrailerFirstCellEmpty requires the trailer row's date cell to be
	// empty and excludes it from the concatenation.
	TrailerFirstCellEmpty bool

	// StartPrefixes are descriptions that begin a record even without a
	// date cell.
	StartPrefixes []string

	// ValueColumn, when >= 0, must be populated on start rows and empty on
	// continuation rows.
	ValueColumn int

	// BalanceColumn, when >= 0, closes the accumulation as soon as it is
	// populated. When < 0 the accumulation stays open until the next start
	// row, a trailer, or end of input.
	BalanceColumn int

	// ValueColumns must all be empty on a fragment that carries no balance
	// (only meaningful with BalanceColumn set).
	ValueColumns []int

	// SpecialLines fixes the fragment count of known records that close
	// without a balance, keyed by their first description line.
	SpecialLines map[string]int

	// TerminalFirst takes the terminal values from the first fragment
	// instead of the last.
	TerminalFirst bool

	// IsArtifact reports rows discarded inside the table, such as carried
	// balance lines. Optional.
	IsArtifact func(types.Row) bool

	// Fixup repairs known extraction damage on a row before it is
	// classified. Optional.
	Fixup func(types.Row) types.Row

	// Convert turns a reconstructed record into a transaction.
	Convert func(Raw) (types.Transaction, error)
}

// Raw is a reconstructed record before value conversion: the date cell of
// its first fragment, every description line joined with newlines, and the
// terminal fragment that supplies the value columns.
type Raw struct {
	Date        types.Cell
	Description string
	Terminal    types.Row
}

// Registry maintains the available statement formats.
type Registry struct {
	formats map[string]*Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]*Format),
	}
}

// DefaultRegistry returns a registry with every built-in format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Account)
	r.Register(Card)
	return r
}

// Register adds a format to the registry.
func (r *Registry) Register(f *Format) {
	r.formats[f.Name] = f
}

// Get returns a format by name.
func (r *Registry) Get(name string) (*Format, bool) {
	f, ok := r.formats[name]
	return f, ok
}

// List returns the registered format names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
