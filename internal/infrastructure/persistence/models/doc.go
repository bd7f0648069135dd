// Package models contains GORM persistence models that map to database tables.
// They are kept separate from domain types so the domain stays free of ORM
// tags; each model has ToDomain and FromDomain mappers.
//
// - base.go: shared ID, timestamp, version and tenant columns
// - location.go: addresses, address groups and physical structures
package models
