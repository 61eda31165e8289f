package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"flms/config"
)

// SendEmail sends an HTML email over SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Fawstech Robotics <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.otp { text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>FAWSTECH ROBOTICS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Fawstech Robotics. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendOTPEmail sends a verification OTP to a student.
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<h1 class="otp">%s</h1>
		<p>This code expires in 5 minutes. Do not share it with anyone.</p>
	`, otp)
	return SendEmail([]string{email}, "Your Fawstech Verification OTP", getEmailTemplate("OTP Verification", body))
}

// SendWelcomeEmail greets a freshly signed-up student.
func SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to Fawstech Robotics! Browse the course catalog and start learning today.</p>
	`, name)
	return SendEmail([]string{email}, "Welcome to Fawstech Robotics", getEmailTemplate("Welcome!", body))
}

// SendPurchaseEmail confirms paid or free course grants after checkout.
func SendPurchaseEmail(email, name string, courseNames []string) error {
	items := ""
	for _, courseName := range courseNames {
		items += fmt.Sprintf("<li>%s</li>", courseName)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your purchase was successful. The following courses are now in your library:</p>
		<div class="info-box"><ul>%s</ul></div>
		<p>Happy learning!</p>
	`, name, items)
	return SendEmail([]string{email}, "Course Purchase Confirmation - Fawstech Robotics", getEmailTemplate("Purchase Successful", body))
}
