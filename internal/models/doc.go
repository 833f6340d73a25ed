// Package models defines the core domain models for Pennywise.
//
// # Models
//
//   - User: registered account, owner of all personal records
//   - Expense / Income: individual cash-flow entries with categories
//   - Budget: per-category monthly limit with alert threshold
//   - BudgetAlert: notification row raised when a budget crosses its threshold
//   - Reminder: dated task, optionally recurring
//   - Friend: directed friendship edge with pending/accepted status
//   - Group: reusable participant list that splits can reference
//   - SplitRecord / SplitParticipant: how a shared expense is divided and
//     where each participant's repayment stands
//
// # Design Principles
//
//  1. Monetary fields are money.Money (integer minor units plus currency),
//     never floats.
//  2. Relationships use ID strings instead of pointers to avoid circular
//     references.
//  3. Timestamps are Unix seconds, assigned by the store on insert.
package models
