// Package timezone holds the hotel's local timezone.
//
// Stay dates, check-in hours and ledger periods are all calendar values in the
// hotel's zone, so every conversion between instants and dates goes through
// this package. The zone comes from APP_TIMEZONE as an IANA name such as
// "Asia/Ho_Chi_Minh". It is loaded on first use, or eagerly through Init, and
// falls back to UTC when the name cannot be loaded.
package timezone
