// Package airtable fetches records from the Airtable REST API.
//
// The client follows the offset pagination cursor until the table is
// exhausted, throttling requests proactively to stay inside Airtable's
// per-base rate limit and backing off on 429 responses.
package airtable
