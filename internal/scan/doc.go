package scan

// Package scan walks a template root and decides which image files need to
// be fetched from the hosted demo: files referenced by the template's markup
// but absent on disk, empty files, and files that look like stub content.
