package authorize

import (
	"net/url"

	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

// Stage identifies a validation step.
type Stage int

const (
	StageClientID Stage = iota
	StageRedirectURI
	StageResponseType
	StageScope
	// StageDone means every step passed.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageClientID:
		return "client_id"
	case StageRedirectURI:
		return "redirect_uri"
	case StageResponseType:
		return "response_type"
	case StageScope:
		return "scope"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result is the verdict for one authorization request. On failure Stage is
// the step that failed and only the values resolved before it are set.
type Result struct {
	Request *core.AuthorizationRequest
	Valid   bool
	Err     *oautherr.Error
	Stage   Stage

	Client        *core.Client
	RedirectURI   *url.URL
	ResponseTypes []string
	Scopes        []string
}

// CanRedirect reports whether a redirect target was verified. It is
// informational only: a rejected request is never answered with a redirect,
// whichever step failed.
func (r *Result) CanRedirect() bool {
	return r.RedirectURI != nil
}
