// Package sanitizer normalizes booking input before validation and storage.
//
// All functions are idempotent. Invalid input is passed through in a
// normalized form so the validator can report it, rather than being rejected
// here.
//
// Normalization includes:
//   - Phone numbers: Indian numbers reduced to their 10 digit national form
//   - Text: collapse whitespace, trim leading/trailing spaces
//   - Pickup times: canonical "9:00 PM" spelling
//   - Amounts: rounded to paise, never negative zero
package sanitizer
