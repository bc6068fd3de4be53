// Package models contains the GORM persistence models of the readiness
// tables. They are kept apart from the domain types so the domain stays free
// of ORM tags; each model converts with ToDomain and a FromDomain constructor.
package models
