/*
Package multisig implements a multi-signature wallet.

A wallet holds a set of owners and a threshold. Any owner can propose an
action: a value transfer, optionally carrying call data, or a governance
command that changes the wallet's own owner set or threshold. A proposal can
be executed by anyone once at least threshold owners confirmed it and it did
not expire yet.

Proposals are kept in an append only log indexed per wallet, starting at 0.
Confirmations are recorded per owner and can be revoked until the proposal is
executed. The quorum is always judged against the owner set and threshold of
the wallet at the moment of execution.

Governance commands are not forwarded anywhere. They are applied by the
Dispatcher, which only accepts calls made on behalf of the wallet itself.
That authorization is granted exclusively by the execution of a proposal.
*/
package multisig
