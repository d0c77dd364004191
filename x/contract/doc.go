/*
Package contract provides call targets for value transfers that carry a
payload.

A target address may have a receiver deployed. When value is sent to such an
address together with call data, the receiver is invoked and may reject the
call, which aborts the whole transition. Addresses without a receiver behave
like plain accounts and ignore the payload.
*/
package contract
