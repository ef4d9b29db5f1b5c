// Package client talks to the TrainIA HTTP API.
//
// It contains:
//   - Client, the interface the rest of the program depends on;
//   - HTTPClient, the production implementation building JSON and multipart
//     requests against a configured base URL;
//   - the error taxonomy (ValidationError, UnauthorizedError, ServerError,
//     NetworkError, ErrInvalidResponse) and Classify, the deterministic
//     mapping from a failed HTTP response to exactly one of those errors.
//
// The package never recovers from an error locally: every failure is mapped
// and handed to the session layer unchanged.
package client
