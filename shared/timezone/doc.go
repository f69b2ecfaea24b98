// Package timezone holds the application clock and the date parsing used for stays.
//
// Usage:
//
//	now := timezone.Now()                         // current time in app timezone
//	checkIn, err := timezone.ParseDate("2024-01-15")
//	checkOut, err := timezone.ParseDate("2024-01-20T11:00:00Z")
//
// Calendar dates are always read as midnight UTC so that night counts do not
// depend on where the server runs. APP_TIMEZONE only affects Now and Format.
package timezone
