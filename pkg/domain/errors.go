package domain

import "errors"

// ErrNoEntryPoint is returned when a graph has no api node to start from.
var ErrNoEntryPoint = errors.New("no api entry point found")

// ErrNodeNotFound is returned when an edge targets an id missing from the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrUnsupportedFormat is returned by loaders that cannot decode a definition source.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// ErrInvalidDefinition is returned when a definition document cannot be decoded.
var ErrInvalidDefinition = errors.New("invalid workflow definition")

// ErrDefinitionNotFound is returned by loaders whose backend holds no definition.
var ErrDefinitionNotFound = errors.New("workflow definition not found")
