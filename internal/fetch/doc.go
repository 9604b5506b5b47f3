package fetch

// Package fetch downloads scan candidates from the hosted demo site and
// writes them into the template tree. A Service owns the task queue and a
// bounded worker pool; the Client wraps net/http with retries, a size cap,
// and browser-like headers.
