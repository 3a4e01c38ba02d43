// Package unix implements the Unix domain socket connector for the client
// session, for clients co-located with the execution core process.
package unix
