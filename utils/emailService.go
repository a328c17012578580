package utils

import (
	"fmt"
	"net/smtp"

	"schoolms/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	header := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(header + "\n" + htmlBody)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendCertificateIssuedEmail notifies a student that a certificate was issued
func SendCertificateIssuedEmail(email, studentName, certificateType, certificateNumber, verificationURL string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Certificate Issued</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your %s certificate has been issued.</p>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #666666;">Anyone can confirm the authenticity of this certificate by scanning the QR code on the document or visiting:</p>
					<p style="font-size: 14px; text-align: center;"><a href="%s">%s</a></p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">School Administration</p>
				</div>
			</body>
		</html>
	`, studentName, certificateType, certificateNumber, verificationURL, verificationURL)

	return SendEmail([]string{email}, "Your Certificate Has Been Issued", body)
}
