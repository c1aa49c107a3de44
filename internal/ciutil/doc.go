// Package ciutil detects CI environments and resolves the database URL used
// by integration tests that run against PostgreSQL.
package ciutil
