package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

func newTestMailer(send func(msgs ...*gomail.Message) error) *SMTPMailer {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com"}, logger.NewNop())
	m.send = send
	return m
}

func TestSendMagicLink(t *testing.T) {
	var sent []*gomail.Message
	m := newTestMailer(func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)
		return nil
	})

	link := "http://localhost:5173/verify?secret=abc&userId=u1"
	require.NoError(t, m.SendMagicLink(context.Background(), "asha@iitk.ac.in", link))
	require.Len(t, sent, 1)

	msg := sent[0]
	assert.Equal(t, []string{"bot@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"asha@iitk.ac.in"}, msg.GetHeader("To"))
	assert.Equal(t, []string{magicLinkSubject}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "localhost:5173/verify")
}

func TestMagicLinkHTML_EscapesLink(t *testing.T) {
	body := magicLinkHTML(`http://localhost:5173/verify?secret=a"b&userId=u1`)
	assert.Contains(t, body, `href="http://localhost:5173/verify?secret=a&#34;b&amp;userId=u1"`)
}

func TestSendMagicLink_SenderOverridesUsername(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Username: "bot@example.com", Sender: "HostleCart <noreply@example.com>"}, logger.NewNop())
	msg := m.magicLinkMessage("a@b.c", "http://x")
	assert.Equal(t, []string{"HostleCart <noreply@example.com>"}, msg.GetHeader("From"))
}

func TestSendMagicLink_Failure(t *testing.T) {
	m := newTestMailer(func(...*gomail.Message) error { return errors.New("535 auth failed") })
	err := m.SendMagicLink(context.Background(), "a@b.c", "http://x")
	assert.ErrorContains(t, err, "535 auth failed")
}

func TestSendMagicLink_CancelledContext(t *testing.T) {
	called := false
	m := newTestMailer(func(...*gomail.Message) error { called = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendMagicLink(ctx, "a@b.c", "http://x"), context.Canceled)
	assert.False(t, called)
}
