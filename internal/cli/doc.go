package cli

// Package cli implements the headless command line interface. It drives the
// same scanner and fetch service as the desktop UI, configured through flags
// and an optional config.yaml read by viper.
