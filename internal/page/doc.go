// Package page renders and checks the generated key demo page.
//
// The page is a single self-contained HTML document. Its script generates a
// random private key, publishes SHA-256 of it as the "public key", signs with
// HMAC-SHA256 and can only verify signatures made with the key pair held in the
// same browser tab. None of that runs at build time; the builder only renders
// the markup and checks that the result is a well-formed document.
package page
