/*
Package wallet implements the wallet store and transaction ledger.

A deposit or withdrawal request creates a pending transaction that an
administrator later validates or rejects (see the review package).
Deposits touch the balance only on validation, once the money has actually
arrived on the platform's mobile-money account. Withdrawals debit the
balance at request time: the funds are earmarked the moment the payout is
asked for, and only an explicit rejection puts them back.

Every balance mutation runs inside a single database transaction together
with the transaction-row write, conditional on the wallet's version
counter, so concurrent operations on the same wallet can never interleave
into a lost update.

Wallets are created lazily with a zero balance on first access and are
never deleted.
*/
package wallet
