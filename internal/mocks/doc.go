// Package mocks provides hand-written test doubles for the store
// interfaces. Each mock exposes optional function fields; a method whose
// field is unset returns the mock's zero behavior. WithTx returns the mock
// itself so services can be exercised without a live transaction.
package mocks
