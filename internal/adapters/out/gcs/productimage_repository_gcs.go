package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProductImageRepositoryGCS implements the back office's ImageStore port on
// Cloud Storage.
//
// Object layout:
// - bucket: cfg.ProductImageBucket
// - object: product-images/<fileName>
//
// The bucket is expected to be publicly readable; Upload returns the public
// https URL the console attaches to the product doc.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

const objectPrefix = "product-images/"

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{Client: client, Bucket: strings.TrimSpace(bucket)}
}

func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, fileName, contentType string, src io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("productimage_repository_gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return "", errors.New("productimage_repository_gcs: bucket is empty")
	}

	fileName = strings.TrimLeft(strings.TrimSpace(fileName), "/")
	if fileName == "" || src == nil {
		return "", errors.New("productimage_repository_gcs: fileName/reader is empty")
	}

	obj := r.Client.Bucket(r.Bucket).Object(objectPrefix + fileName)

	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("productimage_repository_gcs: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("productimage_repository_gcs: close failed: %w", err)
	}

	return publicURL(r.Bucket, objectPrefix+fileName), nil
}

// Delete is idempotent: deleting a missing object is not an error.
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, fileName string) error {
	if r == nil || r.Client == nil {
		return errors.New("productimage_repository_gcs: storage client is nil")
	}

	fileName = strings.TrimLeft(strings.TrimSpace(fileName), "/")
	if fileName == "" {
		return nil
	}

	err := r.Client.Bucket(r.Bucket).Object(objectPrefix + fileName).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || status.Code(err) == codes.NotFound {
			return nil
		}
		return err
	}
	return nil
}

// publicURL builds the public https URL for an object.
func publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.TrimLeft(objectPath, "/"))
}
