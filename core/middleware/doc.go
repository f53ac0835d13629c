// Package middleware groups the fiber middleware used by the HTTP surface.
//
//   - rayid: assigns each request a traceable ray id, exposed both as a
//     response header and through the request-scoped logger.
//   - auth: optional API-key protection for the whole API.
//
// Registration order matters: rayid runs first so that every later log line
// (including auth rejections) carries the id.
package middleware
