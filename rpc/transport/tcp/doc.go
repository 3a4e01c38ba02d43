// Package tcp implements the TCP socket connector for the client session,
// including socket tuning (NoDelay, keep-alive, linger, buffer sizes) from
// the client configuration.
package tcp
