package mail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpact/consulting-api/internal/infrastructure/mail"
)

func validConfig() mail.Config {
	return mail.Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "testuser",
		Password: "testpass",
		From:     "noreply@example.com",
		FromName: "Greenpact Consulting",
		TLS:      true,
	}
}

func TestNewSender(t *testing.T) {
	sender, err := mail.NewSender(validConfig())

	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestNewSender_MissingHost(t *testing.T) {
	cfg := validConfig()
	cfg.Host = ""

	_, err := mail.NewSender(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP host is required")
}

func TestNewSender_MissingFrom(t *testing.T) {
	cfg := validConfig()
	cfg.From = ""

	_, err := mail.NewSender(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP from address is required")
}
