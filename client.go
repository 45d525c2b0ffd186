package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint      = "https://api.steampowered.com/IGameServersService/GetServerList/v1/"
	durationQueryTimeout = time.Second * 10
)

// queryErrorKind is the closed set of ways a directory query can fail. Every failure
// is non-fatal to the poll loop, the affected keyword simply contributes no servers
// for that cycle.
type queryErrorKind int

const (
	kindHTTPError queryErrorKind = iota
	kindConnectionError
	kindTimeoutError
	kindDecodeError
	kindInvalidResponse
)

func (k queryErrorKind) String() string {
	switch k {
	case kindHTTPError:
		return "HTTPError"
	case kindConnectionError:
		return "ConnectionError"
	case kindTimeoutError:
		return "ReadTimeout"
	case kindDecodeError:
		return "JSONDecodeError"
	case kindInvalidResponse:
		return "InvalidResponse"
	default:
		return "Unknown"
	}
}

type queryError struct {
	kind   queryErrorKind
	status int
	err    error
}

func (e *queryError) Error() string {
	if e.kind == kindHTTPError {
		return fmt.Sprintf("%s %d", e.kind, e.status)
	}

	return e.kind.String()
}

func (e *queryError) Unwrap() error {
	return e.err
}

type serverListBody struct {
	Servers *[]rawServer `json:"servers"`
}

type serverListResponse struct {
	Response *serverListBody `json:"response"`
}

// serverListClient queries the Steam Web API server directory.
type serverListClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func newServerListClient(settings userSettings) serverListClient {
	return serverListClient{
		endpoint: settings.Endpoint,
		apiKey:   settings.APIKey,
		client:   &http.Client{Timeout: durationQueryTimeout},
	}
}

// queryURL builds the GetServerList request for a single keyword. The filter is a
// Valve filter expression matching the keyword anywhere in the server name, the key
// is passed through verbatim.
func (c serverListClient) queryURL(keyword string) string {
	return fmt.Sprintf(`%s?filter=\name_match\*%s*&key=%s`, c.endpoint, keyword, c.apiKey)
}

// Query performs one directory request and returns the raw server records. Failures
// come back as a *queryError carrying the classified kind.
func (c serverListClient) Query(ctx context.Context, keyword string) ([]rawServer, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(keyword), nil)
	if errReq != nil {
		return nil, &queryError{kind: kindConnectionError, err: errors.Wrap(errReq, "Failed to create request")}
	}

	resp, errResp := c.client.Do(req)
	if errResp != nil {
		kind := kindConnectionError

		var netErr net.Error
		if errors.As(errResp, &netErr) && netErr.Timeout() {
			kind = kindTimeoutError
		}

		return nil, &queryError{kind: kind, err: errors.Wrap(errResp, "Failed to perform request")}
	}

	defer IgnoreClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &queryError{kind: kindHTTPError, status: resp.StatusCode}
	}

	var body serverListResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&body); errDecode != nil {
		return nil, &queryError{kind: kindDecodeError, err: errors.Wrap(errDecode, "Failed to unmarshal json response")}
	}

	if body.Response == nil || body.Response.Servers == nil {
		return nil, &queryError{kind: kindInvalidResponse}
	}

	return *body.Response.Servers, nil
}
