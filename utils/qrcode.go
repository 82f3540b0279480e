package utils

import qrcode "github.com/skip2/go-qrcode"

// GenerateQrPng renders content as a size x size QR code PNG.
func GenerateQrPng(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
