package mail

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_OpenUnreachable(t *testing.T) {
	// Reserve a port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	mailer := NewSMTPMailer(SMTPConfig{
		Host:    "127.0.0.1",
		Port:    port,
		From:    "no-reply@example.com",
		Timeout: time.Second,
	})

	_, err = mailer.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to smtp server")
}

func TestNewSMTPMailer_DefaultTimeout(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 25})
	assert.Equal(t, 15*time.Second, mailer.cfg.Timeout)
}
