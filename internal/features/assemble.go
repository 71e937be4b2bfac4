package features

import (
	"sort"

	"github.com/jonathan/salary-predictor/internal/types"
)

// Assemble maps a validated record onto the schema's column order.
//
// Schema names the record does not provide are filled with 0 and record fields
// the schema does not name are dropped. Neither case is an error: a model trained
// on extra columns silently receives zeros for them. Use Drift to observe it.
func Assemble(rec *types.EmployeeRecord, schema *Schema) Vector {
	fields := rec.Fields()
	vec := make(Vector, len(schema.names))
	for i, name := range schema.names {
		vec[i] = fields[name] // zero when absent
	}
	return vec
}

// DriftReport lists the differences between a record's fields and a schema.
type DriftReport struct {
	// ZeroFilled are schema names the record did not provide, in schema order.
	ZeroFilled []string
	// Dropped are record fields the schema does not name, sorted.
	Dropped []string
}

// Empty reports whether no schema name was zero-filled.
// Dropped fields alone are expected: the record exposes several encodings of
// each categorical attribute and a model uses at most one of them.
func (d DriftReport) Empty() bool {
	return len(d.ZeroFilled) == 0
}

// Drift compares the record's field set with the schema without altering assembly.
func Drift(rec *types.EmployeeRecord, schema *Schema) DriftReport {
	fields := rec.Fields()
	var report DriftReport
	named := make(map[string]bool, len(schema.names))
	for _, name := range schema.names {
		named[name] = true
		if _, ok := fields[name]; !ok {
			report.ZeroFilled = append(report.ZeroFilled, name)
		}
	}
	for name := range fields {
		if !named[name] {
			report.Dropped = append(report.Dropped, name)
		}
	}
	sort.Strings(report.Dropped)
	return report
}
