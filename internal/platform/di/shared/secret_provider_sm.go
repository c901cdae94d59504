package shared

import (
	"context"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	appcfg "mihrab/internal/infra/config"
)

// resolveSendGridAPIKey resolves the SendGrid key. The env var wins; when it
// is empty and a secret name is configured, the key is read from Secret
// Manager (latest version). Returns "" when neither source yields a key.
func resolveSendGridAPIKey(ctx context.Context, sm *secretmanager.Client, projectID string, cfg *appcfg.Config) string {
	if cfg == nil {
		return ""
	}
	if v := strings.TrimSpace(cfg.SendGridAPIKey); v != "" {
		return v
	}

	secretName := strings.TrimSpace(cfg.SendGridSecretName)
	if secretName == "" {
		return ""
	}
	if sm == nil {
		log.Printf("[shared.infra] WARN: SENDGRID_SECRET_NAME set but secretmanager client unavailable")
		return ""
	}

	name := secretName
	if !strings.HasPrefix(name, "projects/") {
		name = "projects/" + strings.TrimSpace(projectID) + "/secrets/" + name + "/versions/latest"
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[shared.infra] WARN: AccessSecretVersion failed name=%s err=%v", name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[shared.infra] WARN: empty secret payload name=%s", name)
		return ""
	}

	return strings.TrimSpace(string(resp.Payload.Data))
}
