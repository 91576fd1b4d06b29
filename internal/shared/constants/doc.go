// Package constants centralizes defaults shared across the server, the checks
// and the CLI: cache lifetimes per check, upstream endpoints, body limits and
// the API rate budget. Keeping them here avoids import cycles between
// internal/checker, internal/api and cmd/.
package constants
