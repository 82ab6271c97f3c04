package tls

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"
)

// DefaultValidity is how long a generated self-signed certificate is valid
// for, counted from generation time.
const DefaultValidity = 365 * 24 * time.Hour

// defaultKeySize is the RSA key size for generated certificates.
const defaultKeySize = 2048

// SelfSigned holds a freshly generated self-signed certificate in both
// tls.Certificate form (for a server config) and PEM form (for writing to
// disk or handing to clients that want to trust it).
type SelfSigned struct {
	Certificate tls.Certificate
	Leaf        *x509.Certificate
	CertPEM     []byte
	KeyPEM      []byte
}

// GenerateSelfSigned creates a self-signed certificate for the given hosts.
// Entries that parse as IP addresses become IP SANs, everything else a DNS
// SAN. The certificate is valid from now until now+validity; a zero validity
// means DefaultValidity.
//
// Self-signed certificates are for development and loopback use only.
func GenerateSelfSigned(hosts []string, validity time.Duration) (*SelfSigned, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("at least one host is required")
	}
	if validity <= 0 {
		validity = DefaultValidity
	}

	var dnsNames []string
	var ipAddresses []net.IP
	for _, host := range hosts {
		if ip := net.ParseIP(host); ip != nil {
			ipAddresses = append(ipAddresses, ip)
		} else {
			dnsNames = append(dnsNames, host)
		}
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, defaultKeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	notBefore := time.Now()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Kiosk Development"},
			CommonName:   hosts[0],
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(validity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              dnsNames,
		IPAddresses:           ipAddresses,
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	leaf, err := x509.ParseCertificate(derBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated certificate: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	return &SelfSigned{
		Certificate: tls.Certificate{
			Certificate: [][]byte{derBytes},
			PrivateKey:  privateKey,
			Leaf:        leaf,
		},
		Leaf:    leaf,
		CertPEM: certPEM,
		KeyPEM:  keyPEM,
	}, nil
}

// GenerateLoopback generates the certificate used when TLS is enabled without
// operator-provided material: localhost plus both loopback addresses, valid
// for DefaultValidity from now.
func GenerateLoopback() (*SelfSigned, error) {
	return GenerateSelfSigned([]string{"localhost", "127.0.0.1", "::1"}, DefaultValidity)
}
