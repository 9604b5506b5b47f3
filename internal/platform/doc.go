package platform

// Package platform holds OS-facing helpers: directory creation, path
// containment checks, and opening folders in the system file manager.
