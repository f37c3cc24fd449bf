// Package openapi holds the public contracts for reading OpenAPI 3 documents
// and turning their request bodies into forms. The kin-openapi backed loader
// and parser live under internal/openapi; use the constructors in the module
// root to obtain them.
package openapi
