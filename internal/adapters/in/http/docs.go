// Package http exposes the order lifecycle over JSON/HTTP with echo.
//
// The routes and payloads are described by openapi.json, which is embedded,
// used to validate incoming requests and served at /swagger/*. The caller is
// identified by the X-Customer-ID header.
package http
