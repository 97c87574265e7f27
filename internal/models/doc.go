// Package models defines the core domain models for friendsplit.
//
// # Models
//
//   - Friend: a person the user splits bills with, carrying a running balance
//   - Payer: who settled a bill at the table (the user or the selected friend)
//   - BalanceStatus: the settlement direction derived from a balance
//
// # Design Principles
//
// 1. **Plain values**: models carry no behaviour beyond small derived helpers
// 2. **IDs, not pointers**: selection and lookups reference friends by ID
// 3. **Minor units**: all amounts are int64 minor units of one currency
package models
