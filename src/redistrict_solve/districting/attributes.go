package districting

import (
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

const (
	ColumnCountyNumber = "County Number"
	ColumnZipCode      = "Zip Code"
	ColumnPopulation   = "Population"

	TableZipCode    = "zip code"
	TablePopulation = "population"
)

// County is one fully specified row of the joined county table.
type County struct {
	Number     int64
	ZipCode    string
	Population int64
}

// Table is a parsed CSV table indexed by county number.
type Table struct {
	Name    string
	Columns []string
	// Rows maps a county number to the raw row, keyed by lowercased column.
	Rows map[int64]map[string]string
}

// Attributes holds the per-county lookups produced by the inner join.
type Attributes struct {
	ZipCodes    map[int64]string
	Populations map[int64]int64
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// ReadTable parses a CSV table with a header row. The County Number column is
// mandatory and each county may appear only once.
func ReadTable(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, &DataIntegrityError{Table: name, Err: errors.Wrap(err, "cannot read header")}
	}
	headerMap := make(map[string]int, len(headers))
	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = normalizeHeader(h)
		headerMap[columns[i]] = i
	}
	keyIdx, ok := headerMap[normalizeHeader(ColumnCountyNumber)]
	if !ok {
		return nil, &DataIntegrityError{Table: name, Column: ColumnCountyNumber, Err: errors.New("join key column missing")}
	}

	table := &Table{Name: name, Columns: columns, Rows: make(map[int64]map[string]string)}
	rowNo := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNo++
		if err != nil {
			return nil, &DataIntegrityError{Table: name, Row: rowNo, Err: err}
		}
		if keyIdx >= len(record) {
			return nil, &DataIntegrityError{Table: name, Row: rowNo, Column: ColumnCountyNumber, Err: errors.New("value missing")}
		}
		key, err := strconv.ParseInt(strings.TrimSpace(record[keyIdx]), 10, 64)
		if err != nil {
			return nil, &DataIntegrityError{Table: name, Row: rowNo, Column: ColumnCountyNumber, Err: err}
		}
		if _, dup := table.Rows[key]; dup {
			return nil, &DataIntegrityError{Table: name, Row: rowNo, Column: ColumnCountyNumber, Err: errors.Errorf("county %d repeated", key)}
		}
		row := make(map[string]string, len(columns))
		for i, v := range record {
			if i < len(columns) {
				row[columns[i]] = strings.TrimSpace(v)
			}
		}
		table.Rows[key] = row
	}
	return table, nil
}

// LoadTable reads the CSV table at path.
func LoadTable(name, path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s table", name)
	}
	defer file.Close()
	return ReadTable(name, file)
}

func (t *Table) hasColumn(column string) bool {
	return slices.Contains(t.Columns, normalizeHeader(column))
}

// Keys returns the county numbers of the table in ascending order.
func (t *Table) Keys() []int64 {
	keys := maps.Keys(t.Rows)
	slices.Sort(keys)
	return keys
}

// JoinAttributes inner-joins the zip code and population tables on County
// Number. Counties missing from either table are dropped.
func JoinAttributes(zipTable, popTable *Table) (*Attributes, error) {
	if !zipTable.hasColumn(ColumnZipCode) {
		return nil, &DataIntegrityError{Table: zipTable.Name, Column: ColumnZipCode, Err: errors.New("column missing")}
	}
	if !popTable.hasColumn(ColumnPopulation) {
		return nil, &DataIntegrityError{Table: popTable.Name, Column: ColumnPopulation, Err: errors.New("column missing")}
	}

	attrs := &Attributes{
		ZipCodes:    make(map[int64]string),
		Populations: make(map[int64]int64),
	}
	zipCol := normalizeHeader(ColumnZipCode)
	popCol := normalizeHeader(ColumnPopulation)
	dropped := 0
	for _, county := range zipTable.Keys() {
		popRow, ok := popTable.Rows[county]
		if !ok {
			dropped++
			continue
		}
		raw := popRow[popCol]
		pop, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Accept integral floats such as "1234.0".
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil || f != float64(int64(f)) {
				return nil, &DataIntegrityError{Table: popTable.Name, Column: ColumnPopulation, Err: errors.Errorf("county %d: non-numeric population %q", county, raw)}
			}
			pop = int64(f)
		}
		if pop < 0 {
			return nil, &DataIntegrityError{Table: popTable.Name, Column: ColumnPopulation, Err: errors.Errorf("county %d: negative population %d", county, pop)}
		}
		attrs.ZipCodes[county] = zipTable.Rows[county][zipCol]
		attrs.Populations[county] = pop
	}
	dropped += len(popTable.Rows) - len(attrs.Populations)
	if dropped > 0 {
		glog.V(1).Infof("join dropped %d counties present in only one table", dropped)
	}
	return attrs, nil
}

// LoadAttributes reads both county tables and joins them.
func LoadAttributes(zipPath, popPath string) (*Attributes, error) {
	zipTable, err := LoadTable(TableZipCode, zipPath)
	if err != nil {
		return nil, err
	}
	popTable, err := LoadTable(TablePopulation, popPath)
	if err != nil {
		return nil, err
	}
	return JoinAttributes(zipTable, popTable)
}

// Numbers returns the joined county numbers in ascending order.
func (a *Attributes) Numbers() []int64 {
	keys := maps.Keys(a.Populations)
	slices.Sort(keys)
	return keys
}

func (a *Attributes) County(number int64) (County, bool) {
	pop, ok := a.Populations[number]
	if !ok {
		return County{}, false
	}
	return County{Number: number, ZipCode: a.ZipCodes[number], Population: pop}, true
}

// TotalPopulation sums the population over every joined county, including
// counties that do not appear in the adjacency graph.
func (a *Attributes) TotalPopulation() int64 {
	var total int64
	for _, p := range a.Populations {
		total += p
	}
	return total
}

// Population resolves the population of a graph county under the given policy.
func (a *Attributes) Population(number int64, policy MissingPopulationPolicy) (int64, error) {
	if pop, ok := a.Populations[number]; ok {
		return pop, nil
	}
	if policy == MissingPopulationReject {
		return 0, &DataIntegrityError{Table: TablePopulation, Column: ColumnPopulation, Err: errors.Errorf("county %d has no population", number)}
	}
	return 0, nil
}
