/*
Package cash defines the native value ledger: a single balance per address
and a way to send value between addresses.

There is no logic in the value itself, except that a balance may never go
below zero. Sending to an address that was never seen before creates its
balance, which makes a plain SendMsg the passive way of funding any account,
including a multisig wallet.
*/
package cash
