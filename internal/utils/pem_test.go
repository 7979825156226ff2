package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

func selfSignedPEM(t *testing.T, name string) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: name},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
		IsCA:         true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate() error: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestParseCertificatesFromPEMBytes(t *testing.T) {
	bundle := append(selfSignedPEM(t, "ca-one"), pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1}})...)
	bundle = append(bundle, selfSignedPEM(t, "ca-two")...)

	certs, err := ParseCertificatesFromPEMBytes(bundle)
	if err != nil {
		t.Fatalf("ParseCertificatesFromPEMBytes() error: %v", err)
	}
	if len(certs) != 2 {
		t.Fatalf("got %d certificates, want 2", len(certs))
	}
	if certs[1].Subject.CommonName != "ca-two" {
		t.Errorf("second subject = %q, want ca-two", certs[1].Subject.CommonName)
	}
}

func TestParseCertificatesFromPEMBytes_Empty(t *testing.T) {
	if _, err := ParseCertificatesFromPEMBytes([]byte("not pem")); err == nil {
		t.Error("error = nil, want error")
	}
}
