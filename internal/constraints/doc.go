// Package constraints holds architecture tests over the module import graph.
package constraints
