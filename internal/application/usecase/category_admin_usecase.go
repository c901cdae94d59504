package usecase

import (
	"context"
	"errors"
	"strings"

	categorydom "mihrab/internal/domain/category"
)

var ErrCategoryInvalidArgument = errors.New("category_admin_usecase: invalid argument")

// CategoryAdminUsecase is the back-office category CRUD.
type CategoryAdminUsecase struct {
	repo  categorydom.Repository
	idgen IDGenerator
	clock Clock
}

func NewCategoryAdminUsecase(repo categorydom.Repository, idgen IDGenerator) *CategoryAdminUsecase {
	return &CategoryAdminUsecase{repo: repo, idgen: idgen, clock: systemClock{}}
}

// NewCategoryAdminUsecaseWithClock is useful for tests.
func NewCategoryAdminUsecaseWithClock(repo categorydom.Repository, idgen IDGenerator, clock Clock) *CategoryAdminUsecase {
	uc := NewCategoryAdminUsecase(repo, idgen)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

func (uc *CategoryAdminUsecase) Create(ctx context.Context, slug, name string) (*categorydom.Category, error) {
	if uc == nil || uc.repo == nil || uc.idgen == nil {
		return nil, ErrCategoryInvalidArgument
	}

	c, err := categorydom.New(uc.idgen.NewID(), slug, name, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CategoryAdminUsecase) Get(ctx context.Context, id string) (*categorydom.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrCategoryInvalidArgument
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, categorydom.ErrNotFound
	}
	return c, nil
}

func (uc *CategoryAdminUsecase) List(ctx context.Context) ([]categorydom.Category, error) {
	return uc.repo.List(ctx)
}

func (uc *CategoryAdminUsecase) Update(ctx context.Context, id string, patch categorydom.Patch) (*categorydom.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrCategoryInvalidArgument
	}
	return uc.repo.Update(ctx, id, patch)
}

func (uc *CategoryAdminUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrCategoryInvalidArgument
	}
	return uc.repo.Delete(ctx, id)
}
