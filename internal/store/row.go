package store

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// row is one record-relative row index, used to pull typed values out of a
// column-oriented arrow.Record without repeating the same type assertion at
// every call site.
type row struct {
	rec arrow.Record
	i   int
}

func forEachRow(table arrow.Table, fn func(row) error) error {
	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for i := 0; i < int(rec.NumRows()); i++ {
			if err := fn(row{rec: rec, i: i}); err != nil {
				return err
			}
		}
	}
	return tr.Err()
}

func (r row) str(col int) string {
	arr := r.rec.Column(col).(*array.String)
	if arr.IsNull(r.i) {
		return ""
	}
	return arr.Value(r.i)
}

func (r row) int64(col int) int64 {
	arr := r.rec.Column(col).(*array.Int64)
	if arr.IsNull(r.i) {
		return 0
	}
	return arr.Value(r.i)
}

func (r row) boolean(col int) bool {
	arr := r.rec.Column(col).(*array.Boolean)
	if arr.IsNull(r.i) {
		return false
	}
	return arr.Value(r.i)
}

func (r row) time(col int) time.Time {
	s := r.str(col)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r row) strList(col int) []string {
	arr := r.rec.Column(col).(*array.List)
	if arr.IsNull(r.i) {
		return nil
	}
	start, end := arr.ValueOffsets(r.i)
	values := arr.ListValues().(*array.String)
	var out []string
	for j := start; j < end; j++ {
		out = append(out, values.Value(int(j)))
	}
	return out
}
