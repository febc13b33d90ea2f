package email

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"bytes"
	"context"
	"errors"
	"text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

const confirmationTokenSubject = "Password reset confirmation"

var confirmationTokenBody = template.Must(template.New("confirmation-token").Parse(
	`Hello {{ .Username }},

Somebody requested a password reset for your account.
Use the following confirmation token:
{{ .Token }}

The token is valid until {{ .ExpiresAt }} UTC and can be used only once.
If you did not request a password reset, ignore this message.
`))

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender string
}

func NewEmailSender(awsConfig aws.Config, sender string) *EmailSender {
	return newEmailSender(ses.NewFromConfig(awsConfig), sender)
}

func newEmailSender(client sesClient, sender string) *EmailSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if sender == "" {
		panic(e.NewInvalidStateError("email sender address must not be empty"))
	}
	return &EmailSender{ses: client, sender: sender}
}

func (s *EmailSender) SendConfirmationToken(
	ctx context.Context,
	notification account.ConfirmationTokenNotification,
) error {
	if notification.Email == "" {
		return errors.New("account email is not defined")
	}
	body, err := RenderConfirmationToken(notification)
	if err != nil {
		return err
	}

	_, err = s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(notification.Email)},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(confirmationTokenSubject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	)
	return err
}

// RenderConfirmationToken returns the plain text message body carrying the token.
func RenderConfirmationToken(notification account.ConfirmationTokenNotification) (string, error) {
	var buf bytes.Buffer
	err := confirmationTokenBody.Execute(&buf, confirmationTokenParams{
		Username:  string(notification.Username),
		Token:     string(notification.Token),
		ExpiresAt: carbon.Time2Carbon(notification.ExpiresAt).ToDateTimeString(carbon.UTC),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type confirmationTokenParams struct {
	Username  string
	Token     string
	ExpiresAt string
}
