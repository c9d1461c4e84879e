package web

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func writeTestCert(t *testing.T, certPath, keyPath, cn string) {
	t.Helper()
	is := is.New(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	is.NoErr(err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, pub, priv)
	is.NoErr(err)
	key, err := x509.MarshalPKCS8PrivateKey(priv)
	is.NoErr(err)

	is.NoErr(os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	is.NoErr(os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: key}), 0o600))
}

func TestCertReloader(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	writeTestCert(t, certPath, keyPath, "cert-v1")

	cr, err := NewCertReloader(certPath, keyPath, log.New(os.Stderr))
	is.NoErr(err)

	getCert := cr.GetCertificateFunc()
	cert1, err := getCert(nil)
	is.NoErr(err)

	writeTestCert(t, certPath, keyPath, "cert-v2")
	is.NoErr(cr.Reload())

	cert2, err := getCert(nil)
	is.NoErr(err)
	is.True(cert1 != cert2)

	// A broken pair on disk keeps the current certificate.
	is.NoErr(os.WriteFile(keyPath, []byte("garbage"), 0o600))
	is.True(cr.Reload() != nil)

	cert3, err := getCert(nil)
	is.NoErr(err)
	is.True(cert3 == cert2)
}

func TestCertReloaderMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewCertReloader(filepath.Join(dir, "nope.pem"), filepath.Join(dir, "nope.key"), log.New(os.Stderr)); err == nil {
		t.Error("NewCertReloader with missing files => nil error, want error")
	}
}
