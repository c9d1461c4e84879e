package web

import (
	"context"
	"crypto/tls"
	"os"
	"os/signal"
	"sync"

	"github.com/charmbracelet/log"
)

// CertReloader serves a TLS certificate that is loaded again from disk when
// the process receives a reload signal.
type CertReloader struct {
	certMu   sync.RWMutex
	cert     *tls.Certificate
	certPath string
	keyPath  string
	logger   *log.Logger
}

// NewCertReloader loads the certificate and key at the given paths.
func NewCertReloader(certPath, keyPath string, logger *log.Logger) (*CertReloader, error) {
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, err
	}

	return &CertReloader{
		cert:     &cert,
		certPath: certPath,
		keyPath:  keyPath,
		logger:   logger,
	}, nil
}

// Watch reloads the certificate on every reload signal until ctx is done.
// It does nothing on platforms without reload signals.
func (cr *CertReloader) Watch(ctx context.Context) {
	if len(reloadSignals) == 0 {
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, reloadSignals...)
	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
				cr.logger.Info("reloading TLS certificate", "cert", cr.certPath, "key", cr.keyPath)
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload TLS certificate, keeping old certificate", "err", err)
				}
			}
		}
	}()
}

// Reload loads the certificate and key from disk. The current certificate
// is kept when loading fails.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certPath, cr.keyPath)
	if err != nil {
		return err
	}

	cr.certMu.Lock()
	defer cr.certMu.Unlock()
	cr.cert = &cert
	return nil
}

// GetCertificateFunc returns a function that can be used with tls.Config.GetCertificate.
func (cr *CertReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		cr.certMu.RLock()
		defer cr.certMu.RUnlock()
		return cr.cert, nil
	}
}
