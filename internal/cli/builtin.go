package cli

import (
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/dsl"
	"github.com/aretw0/flowserve/pkg/schema"
)

// BuiltinWorkflow is the order quote workflow served when no graph is configured.
//
// It validates a body like {"customer": "ana", "prices": [40, 80]}, totals the
// prices and applies a discount once the subtotal reaches the threshold.
func BuiltinWorkflow() (domain.Definition, error) {
	b := dsl.New()

	b.Add("threshold").Variable("discount_threshold", 100)
	b.Add("rate").Variable("discount_rate", 0.9)

	b.Add("start").API().Label("Order Quote").Then("validate")

	b.Add("validate").
		Interface(
			schema.Field{Name: "customer", Type: "string", Required: true},
			schema.Field{Name: "prices", Type: "array", Required: true},
		).
		Then("subtotal")

	b.Add("subtotal").DataOp("sum", "body.prices", "subtotal").Then("count")
	b.Add("count").DataOp("count", "body.prices", "item_count").Then("check")

	b.Add("check").
		Logic("subtotal >= discount_threshold").
		True("discount").
		False("full_price")

	b.Add("discount").Math("{subtotal}", "*", "{discount_rate}", "total").Then("quote")
	b.Add("full_price").Math("{subtotal}", "+", 0, "total").Then("quote")

	b.Add("quote").Response(`{"items": {item_count}, "subtotal": {subtotal}, "total": {total}}`)

	return b.Definition()
}
