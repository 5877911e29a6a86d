// Package keydemo models the toy key scheme that the generated page runs in the browser.
//
// It is not public-key cryptography. The "public key" is SHA-256 of the hex
// private key, a "signature" is HMAC-SHA256 keyed with the private key, and a
// Session can only verify signatures produced with the single key pair it holds.
// The package exists so the page's behaviour can be exercised from Go and from
// the keys command.
package keydemo
