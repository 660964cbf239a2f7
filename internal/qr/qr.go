// Package qr turns vCard payloads into scannable images. Two
// renderers exist, mirroring the two revisions of the share dialog:
// a local PNG encoder and a hosted QR-image API URL.
package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 200
	hostedAPI   = "https://api.qrserver.com/v1/create-qr-code/"
)

// PNG renders the payload as a PNG entirely in-process, no network
// round-trip.
func PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// HostedURL builds the hosted QR-image API URL for clients that fetch
// the bitmap themselves.
func HostedURL(payload string, size int) string {
	if size <= 0 {
		size = DefaultSize
	}
	v := url.Values{}
	v.Set("size", fmt.Sprintf("%dx%d", size, size))
	v.Set("data", payload)
	return hostedAPI + "?" + v.Encode()
}
