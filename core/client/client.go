// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package client provides easy and fast access to the jobly REST api

A client created with NewWithRouter does not marshal HTTP, it talks directly to
the mux router. This is the tool of choice for unit tests. A client created with
NewWithURL makes real HTTP requests.
*/
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core/access"
)

// Client provides easy access to the REST API.
type Client struct {
	router     *mux.Router
	httpClient *http.Client
	url        string
	token      string
	auth       *access.Authorization
	ctx        context.Context

	defaultHeaders map[string]string
}

// NewWithRouter creates a client to make pseudo-REST requests to the backend,
// through the mux router
//
// WithAuthorization() adds an authorization to the request context.
// WithContext() specifies a different base context all together.
func NewWithRouter(router *mux.Router) Client {
	return Client{
		router: router,
	}
}

// NewWithURL creates a client to make REST requests to the backend
//
// WithToken adds an authorization token to the request header.
func NewWithURL(url string) Client {
	return Client{
		url:        strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// WithHeader returns a new client with a default header added
func (c Client) WithHeader(key string, value string) Client {
	headers := map[string]string{key: value}
	for k, v := range c.defaultHeaders {
		if k != key {
			headers[k] = v
		}
	}
	c.defaultHeaders = headers
	return c
}

// WithToken returns a new client which sends token as bearer token. This
// works with both router and URL clients.
func (c Client) WithToken(token string) Client {
	c.token = token
	return c
}

// WithAuthorization returns a new client with specific authorizations
// (this works only directly against the mux router, for a normal client
// use WithToken())
func (c Client) WithAuthorization(auth *access.Authorization) Client {
	c.auth = auth
	return c
}

// WithContext returns a new client with specific request context
func (c Client) WithContext(ctx context.Context) Client {
	c.ctx = ctx
	return c
}

// Context returns the request context of the client, including its authorization
func (c Client) Context() context.Context {
	ctx := c.ctx
	if c.ctx == nil {
		ctx = context.Background()
	}
	if c.auth != nil {
		ctx = access.ContextWithAuthorization(ctx, c.auth)
	}
	return ctx
}

// do executes the request and returns the status and the response body
func (c Client) do(method, path string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		j, ok := body.([]byte)
		if !ok {
			var err error
			j, err = json.Marshal(body)
			if err != nil {
				return http.StatusBadRequest, nil, err
			}
		}
		reader = bytes.NewBuffer(j)
	}

	r, err := http.NewRequestWithContext(c.Context(), method, c.url+path, reader)
	if err != nil {
		return http.StatusBadRequest, nil, err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.defaultHeaders {
		r.Header.Add(key, value)
	}
	if c.token != "" {
		r.Header.Add("Authorization", "Bearer "+c.token)
	}

	if c.router != nil {
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, r)
		return rec.Code, rec.Body.Bytes(), nil
	}

	res, err := c.httpClient.Do(r)
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	return res.StatusCode, resBody, err
}

// request executes the request, checks the status against the expected ones and
// unmarshals the response into result.
func (c Client) request(method, path string, body, result interface{}, expected ...int) (int, error) {
	status, resBody, err := c.do(method, path, body)
	if err != nil {
		return status, err
	}

	ok := false
	for _, e := range expected {
		ok = ok || status == e
	}
	if !ok {
		return status, fmt.Errorf("handler returned wrong status code: got %v want %v. Error: %s",
			status, expected, strings.TrimSpace(string(resBody)))
	}

	if len(resBody) > 0 && result != nil {
		if raw, ok := result.(*[]byte); ok {
			*raw = resBody
		} else if err = json.Unmarshal(resBody, result); err != nil {
			return status, errors.Wrap(err, "cannot unmarshal response")
		}
	}
	return status, nil
}

// RawGet gets the resource from path. Expects http.StatusOK as response, otherwise it will
// flag an error. Returns the actual http status code.
//
// The path can be extend with query strings.
//
// result can be any JSON target or a raw *[]byte.
// result can be nil.
func (c Client) RawGet(path string, result interface{}) (int, error) {
	return c.request(http.MethodGet, path, nil, result, http.StatusOK)
}

// RawGetWithQuery gets the resource from path with the query parameters in query
func (c Client) RawGetWithQuery(path string, query url.Values, result interface{}) (int, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.RawGet(path, result)
}

// RawPost posts body to path. Expects http.StatusCreated or http.StatusOK as response.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPost(path string, body interface{}, result interface{}) (int, error) {
	return c.request(http.MethodPost, path, body, result, http.StatusCreated, http.StatusOK)
}

// RawPatch patches the resource at path with body. Expects http.StatusOK as response.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPatch(path string, body interface{}, result interface{}) (int, error) {
	return c.request(http.MethodPatch, path, body, result, http.StatusOK)
}

// RawDelete deletes the resource at path. Expects http.StatusOK with a
// {"deleted": key} document as response, otherwise it will flag an error.
//
// Returns the actual http status code.
func (c Client) RawDelete(path string) (int, error) {
	var result struct {
		Deleted interface{} `json:"deleted"`
	}
	status, err := c.request(http.MethodDelete, path, nil, &result, http.StatusOK)
	if err != nil {
		return status, err
	}
	if result.Deleted == nil {
		return status, errors.New("response does not contain the deleted key")
	}
	return status, nil
}
