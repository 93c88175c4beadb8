// Package protocol formats Direct Messaging Protocol requests and parses
// server replies.
//
// Ownership boundary:
// - request envelopes (authenticate, directmessage, fetch)
// - response decoding and the ok check
// - fetch reply entry decoding
//
// Nothing here touches a socket; callers own the connection.
package protocol
