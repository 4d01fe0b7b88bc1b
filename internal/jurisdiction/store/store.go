// Package store provides boundary registry backends implementing
// jurisdiction.BoundaryStore: an in-memory seeded store and a PostgreSQL
// store for production deployments.
package store
