package main

import (
	"accounts/internal/config"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/spf13/cobra"
)

type sesClient interface {
	VerifyEmailIdentity(
		ctx context.Context,
		params *ses.VerifyEmailIdentityInput,
		optFns ...func(*ses.Options),
	) (*ses.VerifyEmailIdentityOutput, error)
	DeleteIdentity(
		ctx context.Context,
		params *ses.DeleteIdentityInput,
		optFns ...func(*ses.Options),
	) (*ses.DeleteIdentityOutput, error)
	SendEmail(
		ctx context.Context,
		params *ses.SendEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendEmailOutput, error)
}

func main() {
	if err := NewRootCmd(loadClient).Execute(); err != nil {
		os.Exit(1)
	}
}

// loadClient returns the SES client and the sender address from the environment.
func loadClient(ctx context.Context) (sesClient, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if cfg.AwsEmailSender == "" {
		return nil, "", fmt.Errorf("AWS_EMAIL_SENDER must be set")
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		ctx,
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, "", err
	}
	return ses.NewFromConfig(awsCfg), cfg.AwsEmailSender, nil
}

func NewRootCmd(load func(ctx context.Context) (sesClient, string, error)) *cobra.Command {
	root := &cobra.Command{
		Use:          "aws",
		Short:        "Manage the SES identity used to send confirmation tokens",
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Send a verification email to AWS_EMAIL_SENDER",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sender, err := load(cmd.Context())
			if err != nil {
				return err
			}
			_, err = client.VerifyEmailIdentity(
				cmd.Context(),
				&ses.VerifyEmailIdentityInput{EmailAddress: aws.String(sender)},
			)
			if err != nil {
				return err
			}
			cmd.Printf("Verification email has been sent to %s.\n", sender)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove AWS_EMAIL_SENDER from verified identities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sender, err := load(cmd.Context())
			if err != nil {
				return err
			}
			_, err = client.DeleteIdentity(cmd.Context(), &ses.DeleteIdentityInput{Identity: aws.String(sender)})
			if err != nil {
				return err
			}
			cmd.Printf("Identity %s has been deleted.\n", sender)
			return nil
		},
	})

	var to string
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a test message from AWS_EMAIL_SENDER",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sender, err := load(cmd.Context())
			if err != nil {
				return err
			}
			_, err = client.SendEmail(cmd.Context(), &ses.SendEmailInput{
				Source:      aws.String(sender),
				Destination: &types.Destination{ToAddresses: []string{to}},
				Message: &types.Message{
					Subject: &types.Content{Data: aws.String("Test message")},
					Body: &types.Body{
						Text: &types.Content{Data: aws.String("Email delivery is configured.")},
					},
				},
			})
			if err != nil {
				return err
			}
			cmd.Printf("Test message has been sent to %s.\n", to)
			return nil
		},
	}
	send.Flags().StringVar(&to, "to", "", "recipient address")
	send.MarkFlagRequired("to")
	root.AddCommand(send)

	return root
}
