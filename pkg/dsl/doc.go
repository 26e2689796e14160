/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing flowserve graphs.

It allows developers to define workflows using a type-safe, fluent builder pattern
instead of relying on external JSON, YAML or HCL files. This is particularly useful for
literal workflows compiled into a binary, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	b := dsl.New()

	b.Add("start").API().Label("Orders").Then("check")

	b.Add("check").
		Logic("body.qty > 10").
		True("bulk").
		False("single")

	b.Add("bulk").Response(`{"discount": 0.1}`)
	b.Add("single").Response(`{"discount": 0}`)

	// The resulting loader can be passed to flowserve.Load(...)
	loader, err := b.Build()
*/
package dsl
