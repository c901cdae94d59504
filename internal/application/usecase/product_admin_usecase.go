package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	productdom "mihrab/internal/domain/product"
)

var ErrProductInvalidArgument = errors.New("product_admin_usecase: invalid argument")

// ImageStore uploads product images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, fileName, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, fileName string) error
}

// ProductAdminUsecase is the back-office product CRUD.
type ProductAdminUsecase struct {
	repo   productdom.Repository
	images ImageStore // optional (nil disables uploads)
	idgen  IDGenerator
	clock  Clock
}

func NewProductAdminUsecase(repo productdom.Repository, images ImageStore, idgen IDGenerator) *ProductAdminUsecase {
	return &ProductAdminUsecase{
		repo:   repo,
		images: images,
		idgen:  idgen,
		clock:  systemClock{},
	}
}

// NewProductAdminUsecaseWithClock is useful for tests.
func NewProductAdminUsecaseWithClock(repo productdom.Repository, images ImageStore, idgen IDGenerator, clock Clock) *ProductAdminUsecase {
	uc := NewProductAdminUsecase(repo, images, idgen)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Create validates and stores a new product. The id is minted here; the
// creation timestamp is stamped in epoch millis so listing sorts never see a
// mixed-shape timestamp.
func (uc *ProductAdminUsecase) Create(ctx context.Context, p productdom.Product) (*productdom.Product, error) {
	if uc == nil || uc.repo == nil || uc.idgen == nil {
		return nil, ErrProductInvalidArgument
	}

	p.ID = uc.idgen.NewID()
	p.CreatedAtMillis = uc.clock.Now().UnixMilli()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *ProductAdminUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductInvalidArgument
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productdom.ErrNotFound
	}
	return p, nil
}

func (uc *ProductAdminUsecase) List(ctx context.Context) ([]productdom.Product, error) {
	return uc.repo.List(ctx)
}

func (uc *ProductAdminUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (*productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductInvalidArgument
	}
	return uc.repo.Update(ctx, id, patch)
}

func (uc *ProductAdminUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProductInvalidArgument
	}
	return uc.repo.Delete(ctx, id)
}

// UploadImage stores an image and returns its public URL. The URL is NOT
// attached to any product here; the console attaches it via Update.
func (uc *ProductAdminUsecase) UploadImage(ctx context.Context, fileName, contentType string, r io.Reader) (string, error) {
	if uc == nil || uc.images == nil {
		return "", errors.New("product_admin_usecase: image store is not configured")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || r == nil {
		return "", ErrProductInvalidArgument
	}
	return uc.images.Upload(ctx, fileName, contentType, r)
}
