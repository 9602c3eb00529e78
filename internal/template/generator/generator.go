// Package generator provides value generators for template parameters.
//
// A parameter may declare a generate strategy instead of a fixed value.
// The processor looks the strategy up by name and calls the matching
// Generator with the parameter's from expression.
package generator

// Generator produces a value from an input expression. Implementations
// decide how the expression is interpreted.
type Generator interface {
	GenerateValue(expression string) (interface{}, error)
}
