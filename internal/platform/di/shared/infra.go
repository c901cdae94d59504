package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	appcfg "mihrab/internal/infra/config"
	"mihrab/internal/infra/database"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/GCS/SecretManager/Postgres)
// - owns env/config-resolved runtime settings (bucket, mail sender)
//
// IMPORTANT:
// Infra must NOT depend on store/console routers, handlers, or queries.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	SecretManager *secretmanager.Client
	DB            *database.DB

	// Runtime settings (resolved once)
	ProductImageBucket string
	SendGridAPIKey     string
	MailFrom           string
	CORSAllowedOrigin  string
}

// NewInfra initializes shared infra.
// Firestore is strict (return error).
// GCS, SecretManager and Postgres are best-effort (warn + continue); the
// features they back degrade to "not configured" responses.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := resolveProjectID(cfg)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:            cfg,
		ProjectID:         projectID,
		MailFrom:          strings.TrimSpace(cfg.MailFrom),
		CORSAllowedOrigin: strings.TrimSpace(cfg.CORSAllowedOrigin),
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Firestore (strict)
	{
		fsClient, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		log.Printf("[shared.infra] Firestore connected project=%s", inf.ProjectID)
	}

	// 2) GCS (best-effort; image uploads degrade without it)
	{
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (image uploads disabled)", err)
		} else {
			inf.GCS = gcsClient
			log.Printf("[shared.infra] GCS storage client initialized")
		}
	}

	// 3) SecretManager (best-effort; only needed for the SendGrid key)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (secret-resolved settings fall back to env)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 4) SendGrid API key (env wins; Secret Manager fallback)
	inf.SendGridAPIKey = resolveSendGridAPIKey(ctx, inf.SecretManager, inf.ProjectID, cfg)
	if inf.SendGridAPIKey == "" {
		log.Printf("[shared.infra] WARN: SendGrid API key not resolved (confirmation mail disabled)")
	}

	// 5) Postgres (best-effort; sales ledger degrades without it)
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		db, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[shared.infra] WARN: postgres connection failed: %v (sales ledger disabled)", err)
		} else {
			inf.DB = db
		}
	} else {
		log.Printf("[shared.infra] Postgres not configured (DATABASE_URL empty, sales ledger disabled)")
	}

	// 6) Bucket (resolve once)
	inf.ProductImageBucket = strings.TrimSpace(cfg.ProductImageBucket)
	if inf.ProductImageBucket == "" {
		log.Printf("[shared.infra] WARN: PRODUCT_IMAGE_BUCKET is empty (image uploads disabled)")
	}

	if inf.Firestore == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
	return nil
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	if len(parts) == 0 {
		return "***"
	}
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
