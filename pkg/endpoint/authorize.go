package endpoint

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

const errorTemplateName = "authorize_error"

// The error page is rendered locally for every rejected request.
var errorTemplate = template.Must(template.New(errorTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Authorization error</title>
</head>
<body>
<h1>Authorization request rejected</h1>
<p><code>{{ .Error.Code }}</code></p>
{{ with .Error.Description }}<p>{{ . }}</p>{{ end }}
{{ with .RequestID }}<p><small>Request ID: {{ . }}</small></p>{{ end }}
</body>
</html>
`))

// AuthorizeResponse describes a request that passed validation.
type AuthorizeResponse struct {
	ClientID            string   `json:"client_id"`
	ClientName          string   `json:"client_name,omitempty"`
	RedirectURI         string   `json:"redirect_uri"`
	ResponseTypes       []string `json:"response_types"`
	Scopes              []string `json:"scopes"`
	State               string   `json:"state,omitempty"`
	CodeChallenge       string   `json:"code_challenge,omitempty"`
	CodeChallengeMethod string   `json:"code_challenge_method,omitempty"`
}

func (h *handler) authorize(c *gin.Context) {
	values := c.Request.URL.Query()
	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err != nil {
			h.renderError(c, oautherr.ErrInvalidRequest.WithDescription("malformed form body"))
			return
		}
		values = c.Request.PostForm
	}

	req, err := core.AuthorizationRequestFromValues(values)
	if err != nil {
		oerr := oautherr.ErrInvalidRequest
		errors.As(err, &oerr)
		h.renderError(c, oerr)
		return
	}

	res := h.service.ValidateRequest(c.Request.Context(), req)
	if res.Valid {
		c.JSON(http.StatusOK, newAuthorizeResponse(res))
		return
	}

	// The user-agent is never sent back to the client on failure, even
	// when the redirect target itself was verified.
	h.renderError(c, res.Err)
}

func newAuthorizeResponse(res *authorize.Result) AuthorizeResponse {
	return AuthorizeResponse{
		ClientID:            res.Client.ID,
		ClientName:          res.Client.Name,
		RedirectURI:         res.RedirectURI.String(),
		ResponseTypes:       res.ResponseTypes,
		Scopes:              res.Scopes,
		State:               res.Request.State,
		CodeChallenge:       res.Request.CodeChallenge,
		CodeChallengeMethod: res.Request.CodeChallengeMethod,
	}
}

// renderError shows the error page without redirecting anywhere.
func (h *handler) renderError(c *gin.Context, oerr *oautherr.Error) {
	status := http.StatusBadRequest
	if oerr.Equal(oautherr.ErrServerError) {
		status = http.StatusInternalServerError
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(status, errorTemplateName, gin.H{
		"Error":     oerr,
		"RequestID": core.RequestIDFromContext(c.Request.Context()),
	})
}
