// Package types defines the entity types, property registry, and standard
// errors for the Depot loan-tracking core: property definitions, categories,
// items, persons, and loans. Entities are plain data; cross-entity indices
// and cascades are owned by the Manager in pkg/depot.
package types
