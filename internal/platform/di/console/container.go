package console

import (
	"context"
	"errors"
	"log"
	"net/http"

	consolehttp "mihrab/internal/adapters/in/http/console"
	consolehandler "mihrab/internal/adapters/in/http/console/handler"
	outdb "mihrab/internal/adapters/out/db"
	outfs "mihrab/internal/adapters/out/firestore"
	"mihrab/internal/adapters/out/gcs"
	usecase "mihrab/internal/application/usecase"
	shared "mihrab/internal/platform/di/shared"
)

// Container is the back-office DI container.
// Pure DI: build deps only. No routing branching.
type Container struct {
	Infra *shared.Infra

	ProductUC  *usecase.ProductAdminUsecase
	CategoryUC *usecase.CategoryAdminUsecase

	SalesLedger *outdb.SalesLedgerRepositoryPG // nil without DATABASE_URL
}

func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil {
		var err error
		infra, err = shared.NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra.Firestore == nil {
		return nil, errors.New("di.console: infra.Firestore is nil")
	}

	c := &Container{Infra: infra}

	productRepo := outfs.NewProductRepositoryFS(infra.Firestore)
	categoryRepo := outfs.NewCategoryRepositoryFS(infra.Firestore)

	// Optional: image store (requires GCS client + bucket)
	var images usecase.ImageStore
	if infra.GCS != nil && infra.ProductImageBucket != "" {
		images = gcs.NewProductImageRepositoryGCS(infra.GCS, infra.ProductImageBucket)
	}

	c.ProductUC = usecase.NewProductAdminUsecase(productRepo, images, shared.UUIDGenerator{})
	c.CategoryUC = usecase.NewCategoryAdminUsecase(categoryRepo, shared.UUIDGenerator{})

	if infra.DB != nil && infra.DB.Client != nil {
		c.SalesLedger = outdb.NewSalesLedgerRepositoryPG(infra.DB.Client)
	}

	log.Printf("[di.console] container built (firestore=%t images=%t ledger=%t)",
		infra.Firestore != nil, images != nil, c.SalesLedger != nil)

	return c, nil
}

// BuildHandler assembles the back-office mux.
func (c *Container) BuildHandler() http.Handler {
	mux := http.NewServeMux()

	var sales http.Handler
	if c.SalesLedger != nil {
		sales = consolehandler.NewSalesHandler(c.SalesLedger)
	} else {
		sales = consolehandler.NewSalesHandler(nil)
	}

	consolehttp.Register(mux, consolehttp.Deps{
		Product:  consolehandler.NewProductHandler(c.ProductUC),
		Category: consolehandler.NewCategoryHandler(c.CategoryUC),
		Image:    consolehandler.NewImageHandler(c.ProductUC),
		Sales:    sales,
	})

	return mux
}
