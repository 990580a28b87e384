// Package ports defines the interfaces that connect the chatship core to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [MessageSender]: Sends one chat message and settles to a Result
//   - [TokenStore]: Read access to the persisted bearer token
//   - [TokenWriter]: Write access for stores managed by the CLI
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// backends (HTTP, TOML file, redis, zerolog, etc.).
package ports
