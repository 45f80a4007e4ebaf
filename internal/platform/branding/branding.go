// Package branding centralizes user-visible product naming.
package branding

// AppName is the user-visible product name.
const AppName = "Vitals"
