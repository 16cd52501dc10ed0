// Package common contains small utilities shared across client components.
package common

// WipeByteArray overwrites b with zeros. Use it to scrub passwords and other
// short-lived secrets once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
