// Package client implements the one-shot query client.
//
// The client performs the following steps:
//	1. Connects to the server, optionally over TLS.
//	2. Sends the query as a single newline-terminated line.
//	3. Reads exactly one response line: "STRING EXISTS" or "STRING NOT FOUND".
//	4. Reports the verdict and the round-trip time.
//
// The protocol is one exchange per connection, so there is nothing to keep
// alive: every Query dials a fresh connection and the server closes it after
// the response. A connection that closes without a response line surfaces as
// ErrNoResponse, which callers must treat as a failure distinct from a
// NOT FOUND verdict.
package client
