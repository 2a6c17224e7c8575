package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// SubjectVerifyEmail is the subject line of the verification email.
const SubjectVerifyEmail = "Verify your email"

var verifyEmailTmpl = template.Must(template.New("verify_email").Parse(`<html>
<body>
<p>Hi,</p>
<p>Please confirm your email address by clicking the link below:</p>
<p><a href="{{.ConfirmURL}}">Verify your email</a></p>
<p>If the button does not work, copy this URL into your browser:</p>
<p>{{.ConfirmURL}}</p>
<p>If you did not create an account, you can safely ignore this message.</p>
</body>
</html>
`))

// RenderVerificationEmail renders the HTML body embedding the confirmation URL.
func RenderVerificationEmail(confirmURL string) (string, error) {
	var b strings.Builder
	data := struct{ ConfirmURL string }{ConfirmURL: confirmURL}
	if err := verifyEmailTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return b.String(), nil
}
