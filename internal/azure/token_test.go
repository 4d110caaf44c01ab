package azure

import (
	"context"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/require"
)

type fakeCredential struct {
	calls int
	token azcore.AccessToken
	err   error
}

func (f *fakeCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return f.token, nil
}

func TestTokenSourceCachesUntilNearExpiry(t *testing.T) {
	cred := &fakeCredential{token: azcore.AccessToken{Token: "tok-1", ExpiresOn: time.Now().Add(time.Hour)}}
	src := NewTokenSourceWithCredential(cred)

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	_, err = src.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cred.calls, "second call should hit the cache")
}

func TestTokenSourceRefreshesExpiring(t *testing.T) {
	cred := &fakeCredential{token: azcore.AccessToken{Token: "tok-1", ExpiresOn: time.Now().Add(30 * time.Second)}}
	src := NewTokenSourceWithCredential(cred)

	_, err := src.Token(context.Background())
	require.NoError(t, err)

	cred.token = azcore.AccessToken{Token: "tok-2", ExpiresOn: time.Now().Add(time.Hour)}
	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
	require.Equal(t, 2, cred.calls)
}
