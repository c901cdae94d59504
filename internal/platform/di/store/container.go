package store

import (
	"context"
	"errors"
	"log"
	"net/http"

	storehttp "mihrab/internal/adapters/in/http/store"
	storehandler "mihrab/internal/adapters/in/http/store/handler"
	outdb "mihrab/internal/adapters/out/db"
	outfs "mihrab/internal/adapters/out/firestore"
	"mihrab/internal/adapters/out/mail"
	storeQuery "mihrab/internal/application/query/store"
	usecase "mihrab/internal/application/usecase"
	shared "mihrab/internal/platform/di/shared"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching.
type Container struct {
	Infra *shared.Infra

	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase

	CatalogQ *storeQuery.CatalogQuery
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
		return nil, errors.New("di.store: infra.Firestore is nil")
	}

	c := &Container{Infra: infra}

	// Firestore repositories
	cartRepo := outfs.NewCartRepositoryFS(infra.Firestore)
	productRepo := outfs.NewProductRepositoryFS(infra.Firestore)
	orderRepo := outfs.NewOrderRepositoryFS(infra.Firestore)

	// Optional outbound: confirmation mail + sales ledger
	var sender usecase.EmailSender
	if infra.SendGridAPIKey != "" {
		sender = mail.NewSendGridClient(infra.SendGridAPIKey, "Mihrab")
	}
	var ledger usecase.SalesLedger
	if infra.DB != nil && infra.DB.Client != nil {
		ledger = outdb.NewSalesLedgerRepositoryPG(infra.DB.Client)
	}

	c.CartUC = usecase.NewCartUsecase(cartRepo)
	c.CheckoutUC = usecase.NewCheckoutUsecase(
		cartRepo,
		orderRepo,
		sender,
		ledger,
		shared.UUIDGenerator{},
		infra.MailFrom,
	)
	c.CatalogQ = storeQuery.NewCatalogQuery(productRepo)

	log.Printf("[di.store] container built (firestore=%t mail=%t ledger=%t)",
		infra.Firestore != nil, sender != nil, ledger != nil)

	return c, nil
}

// BuildHandler assembles the storefront mux.
func (c *Container) BuildHandler() http.Handler {
	mux := http.NewServeMux()

	categoryRepo := outfs.NewCategoryRepositoryFS(c.Infra.Firestore)

	storehttp.Register(mux, storehttp.Deps{
		Catalog:  storehandler.NewCatalogHandler(c.CatalogQ),
		Product:  storehandler.NewProductHandler(c.CatalogQ),
		Category: storehandler.NewCategoryHandler(categoryRepo),
		Cart:     storehandler.NewCartHandler(c.CartUC),
		Checkout: storehandler.NewCheckoutHandler(c.CheckoutUC),
	})

	return mux
}
