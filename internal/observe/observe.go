// Package observe provides visibility-change subscriptions for document
// elements, decoupled from how visibility is actually detected so front ends
// and tests can plug in their own mechanism.
package observe

// Intersection describes an element's relation to the activation region.
type Intersection struct {
	Visible bool    // at least partially inside the region
	Ratio   float64 // fraction of the element inside the region
}

// Callback receives intersection-state changes for a registered element.
type Callback func(id string, state Intersection)

// Observer delivers visibility changes for registered element ids.
type Observer interface {
	Register(id string, cb Callback)
	Unregister(id string)
}
