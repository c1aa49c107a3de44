// Package api exposes the exam-practice core over HTTP. Handlers decode
// requests, resolve the caller identity and attempt session set by the
// middleware package, call the services and write sanitized JSON responses.
package api
