// Package clientip resolves the caller address of HTTP requests behind
// reverse proxies and exposes it to handlers and log records.
//
// Headers are trusted as sent. Deploy behind a proxy that overwrites
// X-Forwarded-For and X-Real-IP.
package clientip
