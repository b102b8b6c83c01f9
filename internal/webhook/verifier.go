// AngelaMos | 2026
// verifier.go

package webhook

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// SignatureVerifier authenticates an inbound event against the shared
// signing secret before any storage is touched.
type SignatureVerifier interface {
	Verify(payload []byte, header http.Header) error
}

type svixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier wraps the identity provider's svix-based signing scheme
// (svix-id / svix-timestamp / svix-signature headers, HMAC over
// "id.timestamp.payload").
func NewSvixVerifier(signingSecret string) (SignatureVerifier, error) {
	wh, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, fmt.Errorf("init webhook verifier: %w", err)
	}

	return &svixVerifier{wh: wh}, nil
}

func (v *svixVerifier) Verify(payload []byte, header http.Header) error {
	if err := v.wh.Verify(payload, header); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}
	return nil
}
