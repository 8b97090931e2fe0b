// Package directory looks up users and their group memberships.
//
// The queue service needs two facts from the directory: a user's role, to
// pick the daily quota, and the non-virtual groups a recipient belongs to,
// recorded as the recipient's origin. Postgres reads both from the
// users/groups/allegiances tables shipped in Migrations; Memory is an
// in-process implementation for tests and local runs.
package directory
