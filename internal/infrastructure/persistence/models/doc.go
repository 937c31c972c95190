// Package models holds the GORM persistence models backing the domain
// entities. Domain types stay free of ORM concerns; each model carries
// the table mapping and converts to and from its domain counterpart
// via ToDomain and FromDomain.
//
// base.go holds the shared BaseModel and AggregateModel embeds,
// partner.go the customer model, and ledger.go the invoice mirror and
// sync status models.
package models
