package driving

import "context"

// Seeder populates an empty store with sample data.
type Seeder interface {
	// Seed inserts sample documents and annotations when no documents
	// exist. Returns false when the store already had data.
	Seed(ctx context.Context) (bool, error)
}
