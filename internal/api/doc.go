// Package api provides the HTTP client for the Smart Home Tech cloud API.
//
// Every screen and CLI command in homectl funnels its network traffic
// through this package's Client, which implements the shared dispatch
// pattern: attach the bearer credential, send one JSON request, classify
// the outcome. There is no retrying, caching or request queueing here;
// callers own their own state and reconcile it from the returned values.
//
// # Failure Classification
//
// Every error returned by a Client method is an *APIError with one of
// three kinds, checked in order:
//
//  1. ServerRejected - the server responded with a non-2xx status. The
//     message is the server's own `message` field when the body carries
//     one, otherwise the operation's default message.
//  2. Unreachable - the request was sent but no response arrived
//     (connection refused, DNS failure, timeout).
//  3. Unknown - anything else, including malformed response bodies.
//
// Failures are never fatal: panels surface APIError.UserMessage() and
// leave their previous state untouched.
//
// # Usage Example
//
//	sess := session.New(sessionPath)
//	client := api.NewClient("http://localhost:3000", sess)
//
//	devices, err := client.ListDevices(ctx)
//	if err != nil {
//	    fmt.Println(api.FailureMessage(err))
//	    return
//	}
//
// # Authentication
//
// The Client reads the credential through the CredentialSource interface
// on every call and never mutates it. Login returns the issued token;
// storing it in the session is the caller's job.
package api
