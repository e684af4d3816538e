// Package dag provides a small directed graph used to validate ordering
// tables before they are trusted. Nodes and edges keep insertion order, so
// every query and every reported cycle is deterministic.
package dag
