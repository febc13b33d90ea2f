package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const SENDER = "noreply@test.test"

type fakeSES struct {
	verified []string
	deleted  []string
	sent     []*ses.SendEmailInput
	err      error
}

func (f *fakeSES) VerifyEmailIdentity(
	ctx context.Context,
	params *ses.VerifyEmailIdentityInput,
	optFns ...func(*ses.Options),
) (*ses.VerifyEmailIdentityOutput, error) {
	f.verified = append(f.verified, *params.EmailAddress)
	return &ses.VerifyEmailIdentityOutput{}, f.err
}

func (f *fakeSES) DeleteIdentity(
	ctx context.Context,
	params *ses.DeleteIdentityInput,
	optFns ...func(*ses.Options),
) (*ses.DeleteIdentityOutput, error) {
	f.deleted = append(f.deleted, *params.Identity)
	return &ses.DeleteIdentityOutput{}, f.err
}

func (f *fakeSES) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	f.sent = append(f.sent, params)
	return &ses.SendEmailOutput{}, f.err
}

func run(client *fakeSES, args ...string) (string, error) {
	cmd := NewRootCmd(func(ctx context.Context) (sesClient, string, error) {
		return client, SENDER, nil
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVerify(t *testing.T) {
	client := &fakeSES{}

	out, err := run(client, "verify")

	require.Nil(t, err)
	assert.Equal(t, []string{SENDER}, client.verified)
	assert.Contains(t, out, "Verification email has been sent")
}

func TestDelete(t *testing.T) {
	client := &fakeSES{}

	_, err := run(client, "delete")

	require.Nil(t, err)
	assert.Equal(t, []string{SENDER}, client.deleted)
}

func TestSend(t *testing.T) {
	client := &fakeSES{}

	_, err := run(client, "send", "--to", "alice@test.test")

	require.Nil(t, err)
	require.Len(t, client.sent, 1)
	assert.Equal(t, SENDER, *client.sent[0].Source)
	assert.Equal(t, []string{"alice@test.test"}, client.sent[0].Destination.ToAddresses)
}

func TestSendRequiresRecipient(t *testing.T) {
	client := &fakeSES{}

	_, err := run(client, "send")

	require.NotNil(t, err)
	assert.Empty(t, client.sent)
}

func TestClientError(t *testing.T) {
	client := &fakeSES{err: errors.New("test")}

	_, err := run(client, "verify")

	require.NotNil(t, err)
}
