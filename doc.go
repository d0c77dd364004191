/*

Package quorum defines interfaces used throughout the ledger, such as: storage,
transactions, handlers, identities and the execution context.
It also contains helpers to work with block time, logging and authentication
conditions. Look into this package to get a brief overview of design decisions
made around interfaces and extension building blocks.

Extensions live under x/. The multi-signature wallet is implemented by
x/multisig, funds are held by x/cash and call targets are served by x/contract.

*/
package quorum
