// Package portfolio holds the user-managed collection of rental properties
// and evaluates it for display.
package portfolio

import (
	"errors"

	"github.com/google/uuid"
	"github.com/iwvelando/rental-compare/pkg/metrics"
)

// ErrNotFound is returned when no property has the requested identifier.
var ErrNotFound = errors.New("property not found")

// Property is one entry of a portfolio. ID is assigned once at creation and
// never changes, whatever happens to the other entries.
type Property struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Input metrics.PropertyInput `json:"input"`
}

// Row is a property together with the metrics computed for one display pass.
type Row struct {
	ID      string                  `json:"id,omitempty"`
	Name    string                  `json:"name"`
	Input   metrics.PropertyInput   `json:"input"`
	Metrics metrics.PropertyMetrics `json:"metrics"`
}

// Portfolio is an ordered collection of properties. It is owned by its
// caller and is not safe for concurrent use.
type Portfolio struct {
	properties []Property
}

// New returns an empty portfolio.
func New() *Portfolio {
	return &Portfolio{}
}

// Add appends a property and returns it with its generated identifier.
func (p *Portfolio) Add(name string, input metrics.PropertyInput) Property {
	property := Property{ID: uuid.New().String(), Name: name, Input: input}
	p.properties = append(p.properties, property)
	return property
}

// Update replaces the name and inputs of an existing property.
func (p *Portfolio) Update(id, name string, input metrics.PropertyInput) (Property, error) {
	i := p.indexOf(id)
	if i < 0 {
		return Property{}, ErrNotFound
	}
	p.properties[i].Name = name
	p.properties[i].Input = input
	return p.properties[i], nil
}

// Remove deletes a property. The relative order of the others is kept.
func (p *Portfolio) Remove(id string) error {
	i := p.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	p.properties = append(p.properties[:i], p.properties[i+1:]...)
	return nil
}

// Get returns the property with the given identifier.
func (p *Portfolio) Get(id string) (Property, error) {
	i := p.indexOf(id)
	if i < 0 {
		return Property{}, ErrNotFound
	}
	return p.properties[i], nil
}

// List returns a copy of the properties in insertion order.
func (p *Portfolio) List() []Property {
	out := make([]Property, len(p.properties))
	copy(out, p.properties)
	return out
}

// Len returns the number of properties.
func (p *Portfolio) Len() int {
	return len(p.properties)
}

// Evaluate computes the metrics of every property from scratch, in insertion
// order.
func (p *Portfolio) Evaluate() []Row {
	return Evaluate(p.properties)
}

// Evaluate computes the metrics of the given properties. It does not modify
// its argument.
func Evaluate(properties []Property) []Row {
	inputs := make([]metrics.PropertyInput, len(properties))
	for i, property := range properties {
		inputs[i] = property.Input
	}

	rows := make([]Row, len(properties))
	for i, m := range metrics.ComputeAll(inputs) {
		rows[i] = Row{
			ID:      properties[i].ID,
			Name:    properties[i].Name,
			Input:   properties[i].Input,
			Metrics: m,
		}
	}
	return rows
}

func (p *Portfolio) indexOf(id string) int {
	for i := range p.properties {
		if p.properties[i].ID == id {
			return i
		}
	}
	return -1
}
