// Package domain contains the core domain entities and value objects for chatship.
//
// This package has no dependencies on infrastructure concerns (HTTP, file
// system, logging) and contains only the values that flow between the
// sender, the token stores and the CLI.
//
// # Entities
//
//   - [Message]: The request payload posted to the chat endpoint
//   - [Result]: The settled outcome of one send, either a JSON value or an error string
//   - [SendError]: The typed failure behind an error Result
package domain
