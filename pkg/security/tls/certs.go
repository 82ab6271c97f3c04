package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"
)

// ValidateCertificate checks that a certificate has a parseable leaf and is
// currently within its validity window.
func ValidateCertificate(cert *tls.Certificate) error {
	if cert == nil {
		return fmt.Errorf("certificate is nil")
	}
	if len(cert.Certificate) == 0 {
		return fmt.Errorf("certificate chain is empty")
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	return ValidateX509Certificate(leaf)
}

// ValidateX509Certificate validates an x509 certificate for expiration.
func ValidateX509Certificate(cert *x509.Certificate) error {
	now := time.Now()

	if now.Before(cert.NotBefore) {
		return fmt.Errorf("certificate is not yet valid (valid from %s)", cert.NotBefore.Format(time.RFC3339))
	}
	if now.After(cert.NotAfter) {
		return fmt.Errorf("certificate expired on %s", cert.NotAfter.Format(time.RFC3339))
	}

	return nil
}

// CertificateInfo is a human-readable summary of a certificate, as printed by
// `kiosk certs info`.
type CertificateInfo struct {
	Subject            string
	Issuer             string
	SerialNumber       string
	NotBefore          time.Time
	NotAfter           time.Time
	DNSNames           []string
	IPAddresses        []string
	SignatureAlgorithm string
	PublicKeyAlgorithm string
}

// ExtractCertificateInfo extracts summary information from an x509
// certificate.
func ExtractCertificateInfo(cert *x509.Certificate) *CertificateInfo {
	info := &CertificateInfo{
		Subject:            cert.Subject.String(),
		Issuer:             cert.Issuer.String(),
		SerialNumber:       fmt.Sprintf("%x", cert.SerialNumber),
		NotBefore:          cert.NotBefore,
		NotAfter:           cert.NotAfter,
		DNSNames:           cert.DNSNames,
		SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		PublicKeyAlgorithm: cert.PublicKeyAlgorithm.String(),
	}

	for _, ip := range cert.IPAddresses {
		info.IPAddresses = append(info.IPAddresses, ip.String())
	}

	return info
}
