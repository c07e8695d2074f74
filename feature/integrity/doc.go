// Package integrity provides health checks for the storage and database
// layers the vessel feature depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the candidate prefix and one folder per enabled source exist in the storage bucket (e.g., candidates/marinetraffic).
//   - Schema: Validates that the vessel and enhancement log tables match their GORM models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
