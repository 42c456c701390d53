package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/core/mocks"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

func newTestValidator(t *testing.T) (*ParameterValidator, *mocks.MockClientReader, *mocks.MockScopeReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	clients := mocks.NewMockClientReader(ctrl)
	scopes := mocks.NewMockScopeReader(ctrl)
	return New(clients, scopes), clients, scopes
}

func publicClient(redirectURIs ...string) *core.Client {
	return &core.Client{ID: "c1", Name: "c1", Type: core.ClientTypePublic, RedirectURIs: redirectURIs}
}

func confidentialClient(redirectURIs ...string) *core.Client {
	return &core.Client{ID: "c2", Name: "c2", Type: core.ClientTypeConfidential, RedirectURIs: redirectURIs}
}

func TestNew_PanicsOnNilReaders(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil) })
}

func TestValidateClientID_Blank(t *testing.T) {
	v, _, _ := newTestValidator(t)

	for _, id := range []string{"", " ", "\t", "  \n "} {
		r := v.ValidateClientID(context.Background(), id)

		require.True(t, r.IsFailure(), "client id %q", id)
		assert.Equal(t, oautherr.CodeInvalidRequest, r.Err().Code)
	}
}

func TestValidateClientID_NotFound(t *testing.T) {
	v, clients, _ := newTestValidator(t)
	clients.EXPECT().GetClient(gomock.Any(), "ghost").Return(nil, core.ErrClientNotFound)

	r := v.ValidateClientID(context.Background(), "ghost")

	require.True(t, r.IsFailure())
	assert.Equal(t, oautherr.CodeInvalidRequest, r.Err().Code)
}

func TestValidateClientID_NilClientWithoutError(t *testing.T) {
	v, clients, _ := newTestValidator(t)
	clients.EXPECT().GetClient(gomock.Any(), "ghost").Return(nil, nil)

	r := v.ValidateClientID(context.Background(), "ghost")

	require.True(t, r.IsFailure())
	assert.Equal(t, oautherr.CodeInvalidRequest, r.Err().Code)
}

func TestValidateClientID_BackendFailure(t *testing.T) {
	v, clients, _ := newTestValidator(t)
	clients.EXPECT().GetClient(gomock.Any(), "c1").Return(nil, errors.New("connection refused"))

	r := v.ValidateClientID(context.Background(), "c1")

	require.True(t, r.IsFailure())
	assert.Equal(t, oautherr.CodeServerError, r.Err().Code)
}

func TestValidateClientID_Found(t *testing.T) {
	v, clients, _ := newTestValidator(t)
	client := publicClient("https://a.example/cb")
	clients.EXPECT().GetClient(gomock.Any(), "c1").Return(client, nil).Times(1)

	r := v.ValidateClientID(context.Background(), "c1")

	require.True(t, r.IsSuccess())
	assert.Same(t, client, r.MustValue())
}

func TestValidateRedirectURI(t *testing.T) {
	tests := []struct {
		name     string
		supplied string
		client   *core.Client
		wantErr  string
		wantURI  string
	}{
		{
			name:     "no registered uris with supplied uri",
			supplied: "https://a.example/cb",
			client:   publicClient(),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "no registered uris without supplied uri",
			supplied: "",
			client:   publicClient(),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "empty supplied uses sole registered uri",
			supplied: "",
			client:   publicClient("https://a.example/cb"),
			wantURI:  "https://a.example/cb",
		},
		{
			name:     "whitespace supplied uses sole registered uri",
			supplied: "   ",
			client:   publicClient("https://a.example/cb"),
			wantURI:  "https://a.example/cb",
		},
		{
			name:     "empty supplied with several registered uris",
			supplied: "",
			client:   publicClient("https://a.example/cb", "https://b.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "exact match",
			supplied: "https://a.example/cb",
			client:   publicClient("https://a.example/cb"),
			wantURI:  "https://a.example/cb",
		},
		{
			name:     "trailing slash on registered side",
			supplied: "https://a.example/cb",
			client:   publicClient("https://a.example/cb/"),
			wantURI:  "https://a.example/cb",
		},
		{
			name:     "trailing slash on both sides",
			supplied: "https://a.example/cb/",
			client:   publicClient("https://a.example/cb/"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "only one registered trailing slash dropped",
			supplied: "https://a.example/cb/",
			client:   publicClient("https://a.example/cb//"),
			wantURI:  "https://a.example/cb/",
		},
		{
			name:     "trailing slash on supplied side only",
			supplied: "https://a.example/cb/",
			client:   publicClient("https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "case insensitive match",
			supplied: "HTTPS://A.EXAMPLE/CB",
			client:   publicClient("https://a.example/cb"),
			wantURI:  "https://A.EXAMPLE/CB",
		},
		{
			name:     "second registered uri matches",
			supplied: "https://b.example/cb",
			client:   publicClient("https://a.example/cb", "https://b.example/cb"),
			wantURI:  "https://b.example/cb",
		},
		{
			name:     "http scheme rejected",
			supplied: "http://a.example/cb",
			client:   publicClient("http://a.example/cb", "https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "relative uri rejected",
			supplied: "/cb",
			client:   publicClient("https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "malformed uri rejected",
			supplied: "https://a.example/%zz",
			client:   publicClient("https://a.example/%zz"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "prefix of registered uri rejected",
			supplied: "https://a.example/cb/evil",
			client:   publicClient("https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "substring of registered uri rejected",
			supplied: "https://a.example/c",
			client:   publicClient("https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
		{
			name:     "unregistered host rejected",
			supplied: "https://evil.example/cb",
			client:   publicClient("https://a.example/cb"),
			wantErr:  oautherr.CodeInvalidRequest,
		},
	}

	v, _, _ := newTestValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.ValidateRedirectURI(tt.supplied, tt.client)

			if tt.wantErr != "" {
				require.True(t, r.IsFailure())
				assert.Equal(t, tt.wantErr, r.Err().Code)
				return
			}
			require.True(t, r.IsSuccess(), "unexpected failure: %v", r.Err())
			assert.Equal(t, tt.wantURI, r.MustValue().String())
		})
	}
}

func TestValidateRedirectURI_NilClientPanics(t *testing.T) {
	v, _, _ := newTestValidator(t)

	assert.Panics(t, func() { v.ValidateRedirectURI("https://a.example/cb", nil) })
}

func TestValidateResponseType(t *testing.T) {
	tests := []struct {
		name         string
		responseType string
		client       *core.Client
		wantErr      string
		want         []string
	}{
		{"empty", "", publicClient(), oautherr.CodeInvalidRequest, nil},
		{"whitespace", "   ", publicClient(), oautherr.CodeInvalidRequest, nil},
		{"unknown token", "bogus", publicClient(), oautherr.CodeInvalidRequest, nil},
		{"one unknown among known", "code bogus", publicClient(), oautherr.CodeInvalidRequest, nil},
		{"code", "code", publicClient(), "", []string{"code"}},
		{"token for public client", "token", publicClient(), "", []string{"token"}},
		{"token for confidential client", "token", confidentialClient(), oautherr.CodeUnauthorizedClient, nil},
		{"hybrid with token for confidential client", "code token", confidentialClient(), oautherr.CodeUnauthorizedClient, nil},
		{"unknown token checked before confidentiality", "token bogus", confidentialClient(), oautherr.CodeInvalidRequest, nil},
		{"padded hybrid for public client", " code  id_token ", publicClient(), "", []string{"code", "id_token"}},
		{"padded hybrid for confidential client", " code  id_token ", confidentialClient(), "", []string{"code", "id_token"}},
		{"none", "none", confidentialClient(), "", []string{"none"}},
		{"case sensitive", "CODE", publicClient(), oautherr.CodeInvalidRequest, nil},
	}

	v, _, _ := newTestValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.ValidateResponseType(tt.responseType, tt.client)

			if tt.wantErr != "" {
				require.True(t, r.IsFailure())
				assert.Equal(t, tt.wantErr, r.Err().Code)
				return
			}
			require.True(t, r.IsSuccess(), "unexpected failure: %v", r.Err())
			assert.Equal(t, tt.want, r.MustValue())
		})
	}
}

func TestValidateResponseType_NilClientPanics(t *testing.T) {
	v, _, _ := newTestValidator(t)

	assert.Panics(t, func() { v.ValidateResponseType("code", nil) })
}

func TestValidateScope_EmptyNeverQueriesStore(t *testing.T) {
	v, _, scopes := newTestValidator(t)
	scopes.EXPECT().GetScopes(gomock.Any(), gomock.Any()).Times(0)

	for _, scope := range []string{"", " ", "   "} {
		r := v.ValidateScope(context.Background(), scope)

		require.True(t, r.IsSuccess(), "scope %q", scope)
		assert.Empty(t, r.MustValue())
	}
}

func TestValidateScope_AllRegistered(t *testing.T) {
	v, _, scopes := newTestValidator(t)
	scopes.EXPECT().
		GetScopes(gomock.Any(), []string{"read", "write"}).
		Return([]core.Scope{{Name: "write"}, {Name: "read"}}, nil)

	r := v.ValidateScope(context.Background(), "read write")

	require.True(t, r.IsSuccess())
	assert.Equal(t, []string{"read", "write"}, r.MustValue())
}

func TestValidateScope_UnregisteredInAnyPosition(t *testing.T) {
	for _, scope := range []string{"read bogus", "bogus read"} {
		t.Run(scope, func(t *testing.T) {
			v, _, scopes := newTestValidator(t)
			scopes.EXPECT().
				GetScopes(gomock.Any(), gomock.Any()).
				Return([]core.Scope{{Name: "read"}}, nil)

			r := v.ValidateScope(context.Background(), scope)

			require.True(t, r.IsFailure())
			assert.Equal(t, oautherr.CodeInvalidScope, r.Err().Code)
		})
	}
}

func TestValidateScope_DoubleSpaceIsMalformed(t *testing.T) {
	v, _, scopes := newTestValidator(t)
	scopes.EXPECT().
		GetScopes(gomock.Any(), []string{"read", "", "write"}).
		Return([]core.Scope{{Name: "read"}, {Name: "write"}}, nil)

	r := v.ValidateScope(context.Background(), "read  write")

	require.True(t, r.IsFailure())
	assert.Equal(t, oautherr.CodeInvalidScope, r.Err().Code)
}

func TestValidateScope_BackendFailure(t *testing.T) {
	v, _, scopes := newTestValidator(t)
	scopes.EXPECT().GetScopes(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	r := v.ValidateScope(context.Background(), "read")

	require.True(t, r.IsFailure())
	assert.Equal(t, oautherr.CodeServerError, r.Err().Code)
}
