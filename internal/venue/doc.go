// Package venue fetches the cinema's public calendar page over HTTP and
// normalizes the markup to UTF-8 for the schedule parser.
package venue
