// Package server implements the query server.
//
// The server performs the following steps:
//	1. Binds one listening endpoint, optionally wrapped in TLS.
//	2. Accepts incoming connections in a loop that never blocks on handler work.
//	3. Hands every accepted connection to its own handler goroutine.
//	4. The handler reads exactly one line from the connection, bounded by the
//	   configured maximum payload size, and strips trailing padding bytes.
//	5. The query is looked up in the dataset store selected at startup.
//	6. The handler writes back exactly one of the two fixed response lines,
//	   "STRING EXISTS" or "STRING NOT FOUND", and closes the connection.
//	7. One structured query log record is emitted per attempt that read at
//	   least one byte, with the query, client address, timestamp and elapsed
//	   milliseconds.
//
// Malformed, oversized or unterminated requests close the connection without
// a response line. A dataset read failure also closes without a response:
// reporting NOT FOUND for an infrastructure fault would be indistinguishable
// from a genuine miss on the client side.
//
// The protocol is one-shot: no session state survives a connection, and a
// fresh connection is the client's retry mechanism.
package server
