// Package listclient is a Go client for the asset lists API. Besides the plain HTTP calls it
// provides a read-through cache invalidated by list change events, and optimistic local
// reordering that is rolled back when the server refuses the move.
package listclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"

	"github.com/cockroachdb/errors"
)

const defaultTimeout = 10 * time.Second

// APIError is a non 2xx answer of the API. It unwraps to the matching base error of the models
// package, so callers can use errors.Is(err, models.ConflictError) and the like.
type APIError struct {
	StatusCode int
	Message    string
	ErrorCode  dto.ErrorCode
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("asset lists api: %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("asset lists api: %d: %s", e.StatusCode, e.Message)
}

var errorsByCode = map[dto.ErrorCode]error{
	dto.ListTypeLocked:        models.ErrListTypeLocked,
	dto.MemberAlreadyExists:   models.ErrMemberAlreadyExists,
	dto.AssetAlreadyInSection: models.ErrAssetAlreadyInSection,
	dto.GroupListMismatch:     models.ErrGroupListMismatch,
	dto.PositionOutOfRange:    models.ErrPositionOutOfRange,
	dto.DuplicateSuggestion:   models.ErrDuplicateSuggestion,
	dto.SuggestionNotPending:  models.ErrSuggestionNotPending,
}

func (e *APIError) Unwrap() error {
	if err, ok := errorsByCode[e.ErrorCode]; ok {
		return err
	}
	switch e.StatusCode {
	case http.StatusBadRequest:
		return models.BadParameterError
	case http.StatusUnauthorized:
		return models.UnAuthorizedError
	case http.StatusForbidden:
		return models.ForbiddenError
	case http.StatusNotFound:
		return models.NotFoundError
	case http.StatusConflict:
		return models.ConflictError
	case http.StatusUnprocessableEntity:
		return models.InvariantViolationError
	}
	return nil
}

type Client struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseUrl, token string, opts ...Option) *Client {
	c := &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody dto.APIErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Message
			apiErr.ErrorCode = errBody.ErrorCode
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "could not decode the answer of %s %s", method, path)
	}
	return nil
}

func (c *Client) GetAssetList(ctx context.Context, listId string) (dto.APIAssetListWithCapabilities, error) {
	var out struct {
		AssetList dto.APIAssetListWithCapabilities `json:"asset_list"`
	}
	err := c.do(ctx, http.MethodGet, "/asset-lists/"+url.PathEscape(listId), nil, nil, &out)
	return out.AssetList, err
}

func (c *Client) ListItems(ctx context.Context, listId string) ([]dto.APIListItem, error) {
	var out struct {
		Items []dto.APIListItem `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/asset-lists/"+url.PathEscape(listId)+"/items", nil, nil, &out)
	return out.Items, err
}

func (c *Client) ListGroups(ctx context.Context, listId string) ([]dto.APIListGroup, error) {
	var out struct {
		Groups []dto.APIListGroup `json:"groups"`
	}
	err := c.do(ctx, http.MethodGet, "/asset-lists/"+url.PathEscape(listId)+"/groups", nil, nil, &out)
	return out.Groups, err
}

func (c *Client) AddItem(ctx context.Context, listId string, body dto.AddListItemBody) (dto.APIListItem, error) {
	var out struct {
		Item dto.APIListItem `json:"item"`
	}
	err := c.do(ctx, http.MethodPost, "/asset-lists/"+url.PathEscape(listId)+"/items", nil, body, &out)
	return out.Item, err
}

func (c *Client) RemoveItem(ctx context.Context, itemId string) error {
	return c.do(ctx, http.MethodDelete, "/list-items/"+url.PathEscape(itemId), nil, nil, nil)
}

// ReorderItem returns the items whose position key the server wrote.
func (c *Client) ReorderItem(ctx context.Context, listId string, body dto.ReorderItemBody) ([]dto.APIListItem, error) {
	var out struct {
		Items []dto.APIListItem `json:"items"`
	}
	err := c.do(ctx, http.MethodPost, "/asset-lists/"+url.PathEscape(listId)+"/items/reorder", nil, body, &out)
	return out.Items, err
}

func (c *Client) ProposeSuggestion(
	ctx context.Context,
	listId string,
	body dto.ProposeSuggestionBody,
) (dto.APIListSuggestion, error) {
	var out struct {
		Suggestion dto.APIListSuggestion `json:"suggestion"`
	}
	err := c.do(ctx, http.MethodPost, "/asset-lists/"+url.PathEscape(listId)+"/suggestions", nil, body, &out)
	return out.Suggestion, err
}

func (c *Client) RespondToSuggestion(
	ctx context.Context,
	suggestionId string,
	body dto.RespondToSuggestionBody,
) (dto.APIListSuggestion, error) {
	var out struct {
		Suggestion dto.APIListSuggestion `json:"suggestion"`
	}
	err := c.do(ctx, http.MethodPost, "/suggestions/"+url.PathEscape(suggestionId)+"/respond", nil, body, &out)
	return out.Suggestion, err
}

func (c *Client) CancelSuggestion(ctx context.Context, suggestionId string) error {
	return c.do(ctx, http.MethodDelete, "/suggestions/"+url.PathEscape(suggestionId), nil, nil, nil)
}

func (c *Client) ListSuggestions(ctx context.Context, query dto.ListSuggestionsQuery) (dto.APIUserSuggestions, error) {
	params := url.Values{}
	if query.ListId != "" {
		params.Set("list_id", query.ListId)
	}
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	var out dto.APIUserSuggestions
	err := c.do(ctx, http.MethodGet, "/suggestions", params, nil, &out)
	return out, err
}
