// Package sanitizer normalizes user input before validation and storage.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully by returning it
// trimmed rather than failing, and leave rejection to the validators.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Month-days: Zero-pad loose dates - "6-1" becomes "06-01"
//   - Multipliers: Trim and accept a decimal comma - "1,25" becomes "1.25"
//   - Season types: Lowercase - " High " becomes "high"
package sanitizer
