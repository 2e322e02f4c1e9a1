// ABOUTME: Version information for spectra
// ABOUTME: Reported by the version command and stamped into training logs
package version

const (
	// Version is the current release
	Version = "0.3.0"

	// Product is the product name
	Product = "spectra"

	// Manufacturer is the organization name
	Manufacturer = "harperreed"
)

// String returns the product, version and manufacturer on one line
func String() string {
	return Product + " " + Version + " (" + Manufacturer + ")"
}
