package services

// Error taxonomy surfaced to the HTTP layer. Handlers map these to status
// codes: validation and conflict to 400, auth to 401, not-found to 404.
// Anything else is treated as an internal error.

type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type ConflictError string

func (e ConflictError) Error() string { return string(e) }

type NotFoundError string

func (e NotFoundError) Error() string { return string(e) }

type AuthError string

func (e AuthError) Error() string { return string(e) }
