// Package models defines the core domain models for the household dues ledger.
//
// # Records
//
// The ledger holds three kinds of records:
//   - Member: a person in the household who owes monthly dues
//   - Contribution: a cash payment made by one member
//   - Expenditure: money spent from the shared fund, recorded by an admin
//
// Contributions and expenditures are immutable once stored. Members are
// seeded on first start and afterwards only change their credential.
//
// # Amounts
//
// All amounts are whole currency units (int64). There is no fractional or
// multi-currency handling.
//
// # Periods
//
// A Period is a calendar year-month bucket. Contributions carry the period of
// their timestamp, and dues obligations are counted in whole periods.
package models
