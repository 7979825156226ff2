package utils

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// ParseCertificatesFromPEMBytes parses every CERTIFICATE block of a PEM bundle,
// skipping other block types.
// It returns an error when the bundle holds no certificate or a malformed one.
func ParseCertificatesFromPEMBytes(pemBytes []byte) ([]*x509.Certificate, error) {
	certs := []*x509.Certificate{}
	rest := pemBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %v", err)
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, fmt.Errorf("failed to parse certificate from PEM")
	}
	return certs, nil
}
