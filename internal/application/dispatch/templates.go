package dispatch

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

// Fixed templates, one per notification kind. Nothing user-supplied reaches
// them beyond the recipient address; templates are parsed once at init.

const subjectWelcome = "Welcome to Crypto Key! 🔐🚀"
const subjectWalletCreated = "Your Crypto Key Wallet is Ready! 🎉"
const subjectStatusError = "Action Required: Issue with Your Crypto Key Wallet"

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f7fafc; border-radius: 8px;">
  <div style="padding: 20px;">
    <h1 style="color: #1a365d; margin-bottom: 20px; text-align: center;">Welcome to Crypto Key! 🔐🚀</h1>
    <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
      Thank you for signing up — we're thrilled to have you with us!
    </p>
    <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
      Your account ({{.Recipient}}) has been successfully created, and you're now ready to explore
      the powerful features of Crypto Key, your trusted crypto wallet. Whether you're sending,
      receiving, or managing digital assets, we've got you covered every step of the way.
    </p>
    <div style="background-color: #ffffff; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h2 style="color: #2d3748; margin-bottom: 15px;">🔑 What You Can Do with Crypto Key:</h2>
      <ul style="color: #4a5568; font-size: 16px; line-height: 1.8; padding-left: 20px;">
        <li>Securely store and manage your cryptocurrencies</li>
        <li>Send and receive USDT, ETH, BNB, and more</li>
        <li>Access your wallet anytime, anywhere</li>
        <li>Enjoy top-notch security and privacy features</li>
      </ul>
    </div>
    <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
      If you have any questions or need help getting started, feel free to visit our Help Center
      or explore our in-app tutorials.
    </p>
    <div style="border-top: 1px solid #e2e8f0; margin-top: 30px; padding-top: 20px;">
      <p style="color: #718096; font-size: 14px; text-align: center;">
        This is an automated message. Please do not reply directly to this email.
      </p>
      <p style="color: #4a5568; font-size: 16px;">Stay secure,<br>The Crypto Key Team</p>
    </div>
  </div>
</div>`))

var walletCreatedTmpl = template.Must(template.New("wallet_created").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #1a365d; margin-bottom: 10px;">Your Wallet is Ready! 🎉</h1>
    <p style="color: #4a5568; font-size: 16px;">Great news! Your crypto wallet has been successfully created.</p>
  </div>
  <div style="background-color: #f7fafc; border-radius: 8px; padding: 20px; margin-bottom: 30px;">
    <h2 style="color: #2d3748; margin-bottom: 15px;">Next Steps</h2>
    <ul style="color: #4a5568; line-height: 1.6; padding-left: 20px;">
      <li>Log in to your dashboard to view your wallet details</li>
      <li>Set up additional security measures</li>
      <li>Start managing your crypto assets</li>
    </ul>
  </div>
  <div style="background-color: #ebf8ff; border-radius: 8px; padding: 20px; margin-bottom: 30px;">
    <h2 style="color: #2c5282; margin-bottom: 15px;">Important Security Reminders</h2>
    <ul style="color: #4a5568; line-height: 1.6; padding-left: 20px;">
      <li>Keep your private keys secure</li>
      <li>Never share your wallet credentials</li>
      <li>Enable all recommended security features</li>
    </ul>
  </div>
  <div style="text-align: center; margin-top: 30px;">
    <p style="color: #718096; font-size: 14px;">
      Need help? Contact our support team.<br>
      This is an automated message, please do not reply directly to this email.
    </p>
  </div>
</div>`))

var statusErrorTmpl = template.Must(template.New("status_error").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #c53030; margin-bottom: 10px;">Attention Required</h1>
    <p style="color: #4a5568; font-size: 16px;">We've encountered an issue with your wallet setup.</p>
  </div>
  <div style="background-color: #fff5f5; border-radius: 8px; padding: 20px; margin-bottom: 30px;">
    <h2 style="color: #c53030; margin-bottom: 15px;">What Happened?</h2>
    <p style="color: #4a5568; line-height: 1.6;">
      There was an issue during your wallet creation process. Don't worry - your account is secure,
      but we need to take some additional steps to complete your setup.
    </p>
  </div>
  <div style="background-color: #f7fafc; border-radius: 8px; padding: 20px; margin-bottom: 30px;">
    <h2 style="color: #2d3748; margin-bottom: 15px;">Next Steps</h2>
    <ul style="color: #4a5568; line-height: 1.6; padding-left: 20px;">
      <li>Log in to your dashboard</li>
      <li>Visit the wallet setup section</li>
      <li>Follow the troubleshooting steps</li>
    </ul>
  </div>
  <div style="text-align: center; margin-top: 30px;">
    <p style="color: #718096; font-size: 14px;">
      Need immediate assistance? Contact our support team.<br>
      This is an automated message, please do not reply directly to this email.
    </p>
  </div>
</div>`))

type templateData struct {
	Recipient string
}

// render returns the subject and HTML body for a kind. Unknown kinds are the
// caller's responsibility; render treats them as a programming error.
func render(kind domain.NotificationKind, recipient string) (subject, html string, err error) {
	var tmpl *template.Template
	switch kind {
	case domain.KindWelcome:
		subject, tmpl = subjectWelcome, welcomeTmpl
	case domain.KindWalletCreated:
		subject, tmpl = subjectWalletCreated, walletCreatedTmpl
	case domain.KindStatusError:
		subject, tmpl = subjectStatusError, statusErrorTmpl
	default:
		return "", "", fmt.Errorf("no template for kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Recipient: recipient}); err != nil {
		return "", "", fmt.Errorf("render %s template: %w", kind, err)
	}
	return subject, buf.String(), nil
}
