// Package services holds the application core behind the driving ports.
// Each service orchestrates driven ports (stores, gateways, connectors)
// to carry out one area of behaviour: ingestion runs, grounded asks,
// corpus and document management, validation and export.
package services
