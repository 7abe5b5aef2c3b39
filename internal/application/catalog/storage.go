package catalog

import "context"

// ImageStorage abstracts the object store that holds product images.
// Implementations return a stable public URL for each stored object;
// the URL is saved verbatim on the product.
type ImageStorage interface {
	// Upload stores an object under the given key and returns its public URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object is present
	Exists(ctx context.Context, key string) (bool, error)
}
