package schema

// Field declares one expected body field.
type Field struct {
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Required bool   `mapstructure:"required"`
}

// Report lists the failures of one Check, in field declaration order.
type Report struct {
	Missing []string
	Invalid []*ValidationError
}

// OK reports whether the data passed.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// Check validates data against fields.
//
// Fields without a name are skipped and an empty type means "string". A required
// field that is absent is reported missing. A present field is checked against its
// registered type; unregistered type names always pass.
func Check(fields []Field, data map[string]any) *Report {
	report := &Report{
		Missing: []string{},
		Invalid: []*ValidationError{},
	}

	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		typeName := field.Type
		if typeName == "" {
			typeName = "string"
		}

		value, exists := data[field.Name]
		if !exists {
			if field.Required {
				report.Missing = append(report.Missing, field.Name)
			}
			continue
		}

		fieldType, known := Lookup(typeName)
		if !known {
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			report.Invalid = append(report.Invalid, &ValidationError{
				Key:      field.Name,
				Expected: typeName,
				Reason:   err.Error(),
				Value:    value,
			})
		}
	}

	return report
}
