/*
Package x contains the extensions of the ledger.

Extensions implement common functionality (Handler, Decorator,
Initializer, etc.) and are combined together by the app package to
construct an application.

This package itself only defines the Authenticator abstraction that
extensions use to learn which conditions authorized a transaction.
*/
package x
