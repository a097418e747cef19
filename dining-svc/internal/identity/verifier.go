// Package identity verifies and decodes user webhooks sent by the identity
// provider. Deliveries are signed with svix.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	svix "github.com/svix/svix-webhooks/go"
)

const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"

	secretPrefix     = "whsec_"
	DefaultTolerance = 5 * time.Minute
)

var (
	ErrMissingHeaders   = errors.New("missing webhook signature headers")
	ErrInvalidTimestamp = errors.New("webhook timestamp outside tolerance")
	ErrInvalidSignature = errors.New("webhook signature mismatch")
)

type Verifier struct {
	hook      *svix.Webhook
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier accepts the secret as shown in the provider dashboard, with or
// without the whsec_ prefix.
func NewVerifier(secret string, tolerance time.Duration, now func() time.Time) (*Verifier, error) {
	if strings.TrimPrefix(secret, secretPrefix) == "" {
		return nil, errors.New("webhook secret is empty")
	}
	hook, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret: %w", err)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if now == nil {
		now = time.Now
	}
	return &Verifier{hook: hook, tolerance: tolerance, now: now}, nil
}

// Verify checks the delivery headers against payload and returns the message id.
// The timestamp is checked against the injected clock; svix checks the signature.
func (v *Verifier) Verify(header http.Header, payload []byte) (string, error) {
	id := header.Get(HeaderID)
	rawTS := header.Get(HeaderTimestamp)
	if id == "" || rawTS == "" || header.Get(HeaderSignature) == "" {
		return "", ErrMissingHeaders
	}

	secs, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return "", ErrInvalidTimestamp
	}
	if d := v.now().Sub(time.Unix(secs, 0)); d > v.tolerance || d < -v.tolerance {
		return "", ErrInvalidTimestamp
	}

	if err := v.hook.VerifyIgnoringTimestamp(payload, header); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return id, nil
}

// Sign produces a signature header value for payload. Callers outside the
// package use it to build deliveries in tests and local tooling.
func (v *Verifier) Sign(id string, at time.Time, payload []byte) (string, error) {
	return v.hook.Sign(id, at, payload)
}
