// Package program turns a cinema's published program into showing
// records. It reads the HTML program page as well as JSON and YAML
// dumps, assigns stable identifiers, and hands back a deduplicated
// slice sorted by start time, ready for catalog construction.
package program
