// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key or Bearer token) protecting the vessel routes.
//   - rayid: a per-request id stored in Locals("ray_id") and echoed in X-Ray-ID,
//     picked up by logger.WithRayID.
//
// Both are registered globally in the start command, rayid first.
package middleware
