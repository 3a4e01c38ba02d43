// Package rpc contains the client-side protocol and routing layer for the
// key-value execution core. Application code issues commands against a
// remote or co-located core without knowing connection topology, request
// framing or response correlation.
//
// The package is organized into several subpackages:
//
//   - common: Configuration, error taxonomy and logging shared across the
//     client.
//
//   - command: The command descriptor builder, turning a name and ordered
//     argument list into a validated, immutable descriptor.
//
//   - route: The route resolver, mapping caller-facing route intents
//     (all primaries, all nodes, random node, slot by key, slot by id) to
//     wire-level route directives.
//
//   - codec: The length-delimited binary frame protocol for requests,
//     responses and the connection bootstrap message.
//
//   - session: The connection session owning one persistent connection,
//     with serialized writes, a single read pump and the pending request
//     table correlating responses by request identifier.
//
//   - transport: Pluggable connectors (TCP, Unix sockets) used by the
//     session to reach the core.
//
//   - client: The public facades, standard and cluster-aware, built on one
//     shared dispatch engine.
package rpc
