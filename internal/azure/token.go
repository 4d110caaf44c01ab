package azure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// TokenScope is the audience for Azure Database for PostgreSQL when
// authenticating with Microsoft EntraID.
const TokenScope = "https://ossrdbms-aad.database.windows.net/.default"

// refreshSkew refreshes tokens this long before expiry.
const refreshSkew = 2 * time.Minute

// TokenSource caches an AAD access token and refreshes it before expiry.
// It is safe for concurrent use; the database layer calls it on every new
// connection.
type TokenSource struct {
	cred  azcore.TokenCredential
	mu    sync.Mutex
	token azcore.AccessToken
}

// NewTokenSource builds a token source backed by DefaultAzureCredential.
func NewTokenSource() (*TokenSource, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default azure credential: %w", err)
	}
	return &TokenSource{cred: cred}, nil
}

// NewTokenSourceWithCredential is used by tests and callers that already
// hold a credential.
func NewTokenSourceWithCredential(cred azcore.TokenCredential) *TokenSource {
	return &TokenSource{cred: cred}
}

// Token returns a valid access token, fetching a new one when the cached
// token is missing or close to expiry.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token.Token != "" && time.Until(s.token.ExpiresOn) > refreshSkew {
		return s.token.Token, nil
	}
	tok, err := s.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{TokenScope}})
	if err != nil {
		return "", fmt.Errorf("get aad token: %w", err)
	}
	s.token = tok
	return tok.Token, nil
}
