package interfaces

import "context"

// PhotoStore is the object storage contract for venue photos. Paths are
// deterministic and uploads are idempotent: saving an existing path
// overwrites it in place.
type PhotoStore interface {
	// Save stores the photo bytes under the given bucket path and returns
	// the stable public URL of the stored object.
	Save(ctx context.Context, path string, contentType string, data []byte) (string, error)

	// PublicURL resolves the permanent URL for a stored path
	PublicURL(path string) string
}
