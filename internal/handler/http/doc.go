// Package http implements the HTTP transport of the site forms server.
//
// It wires the chi router, the JSON handlers of the form, submission,
// content, upload and sign-in endpoints, and the middleware chain: trace id,
// access log, gzip, admin bearer auth and the visitor session. Handlers only
// decode requests and map errors to statuses; all logic lives in the service
// layer.
package http
