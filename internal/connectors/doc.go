// Package connectors provides implementations of the Connector interface.
// Each connector knows how to enumerate and read raw documents from a
// corpus root, currently the local filesystem.
//
// Connectors are built through the ConnectorFactory at ingestion time.
package connectors
