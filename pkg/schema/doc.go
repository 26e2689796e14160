// Package schema validates request bodies against declared field lists.
//
// It defines the small type system used by interface nodes: string, number,
// boolean, object and array. Field lists are ordered, so failures are reported
// in declaration order.
//
// Basic usage:
//
//	fields := []schema.Field{
//	    {Name: "id", Type: "number", Required: true},
//	    {Name: "tags", Type: "array"},
//	}
//
//	report := schema.Check(fields, body)
//	if !report.OK() {
//	    // report.Missing and report.Invalid describe the failures
//	}
//
// Unknown type names are not checked. Custom types can be registered:
//
//	schema.Register(schema.Custom("email", func(v any) error {
//	    s, ok := v.(string)
//	    if !ok || !strings.Contains(s, "@") {
//	        return fmt.Errorf("expected email")
//	    }
//	    return nil
//	}))
//
// This package has no dependencies beyond the Go standard library.
package schema
