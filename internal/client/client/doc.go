// Package client is the HTTP transport of the tixgo client.
//
// # Overview
//
// HTTPClient sends JSON requests to the portal API relative to a base URL.
// It attaches the session token read from a TokenSource as a bearer token
// and treats any 401 as proof the session is gone: the token is cleared
// before the call returns, whichever endpoint produced it.
//
// Every response is wrapped in an Envelope{OK, Status, Body}. Body is a
// tagged value: JSON when the payload parses, raw text otherwise.
//
// # Error Handling
//
//   - *RequestFailedError{Status, Message, Data}: the server answered non-2xx.
//     Message comes from "detail", then "message", then "Request failed".
//   - *TransportError: no response at all. Matches ErrUnavailable.
//
// errors.Is(err, ErrUnauthorized) holds for a RequestFailedError with 401.
// Nothing is retried.
package client
