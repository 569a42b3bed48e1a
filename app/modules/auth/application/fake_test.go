package authservice

import (
	"context"

	"golang.org/x/oauth2"

	authdb "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/repositories"
)

// ------------------------
// Fake Code Exchanger
// ------------------------

type FakeCodeExchanger struct {
	ExchangeFunc func(ctx context.Context, code string) (*oauth2.Token, error)
}

func (f *FakeCodeExchanger) Exchange(ctx context.Context, code string, _ ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	if f.ExchangeFunc != nil {
		return f.ExchangeFunc(ctx, code)
	}
	return &oauth2.Token{AccessToken: "fake-access-token"}, nil
}

// ------------------------
// Fake Token Repository
// ------------------------

// FakeTokenRepository keeps stored tokens in a map, keyed by token id.
type FakeTokenRepository struct {
	trace  []string
	stored map[string]*authdb.APIToken

	StoreTokenFunc func(ctx context.Context, token *authdb.APIToken) error
	GetTokenFunc   func(ctx context.Context, tokenID string) (*authdb.APIToken, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTokenRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTokenRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTokenRepository) StoreToken(ctx context.Context, token *authdb.APIToken) error {
	f.record("StoreToken")
	if f.StoreTokenFunc != nil {
		return f.StoreTokenFunc(ctx, token)
	}
	if f.stored == nil {
		f.stored = make(map[string]*authdb.APIToken)
	}
	f.stored[token.TokenID] = token
	return nil
}

func (f *FakeTokenRepository) GetToken(ctx context.Context, tokenID string) (*authdb.APIToken, error) {
	f.record("GetToken")
	if f.GetTokenFunc != nil {
		return f.GetTokenFunc(ctx, tokenID)
	}
	return f.stored[tokenID], nil
}

func (f *FakeTokenRepository) DeleteToken(_ context.Context, tokenID string) error {
	f.record("DeleteToken")
	delete(f.stored, tokenID)
	return nil
}

func (f *FakeTokenRepository) DeleteExpiredTokens(_ context.Context) (int, error) {
	f.record("DeleteExpiredTokens")
	return 0, nil
}
