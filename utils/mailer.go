package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var (
	sesClient *ses.Client
	sesOnce   sync.Once
	sesErr    error
)

func getSESClient() (*ses.Client, error) {
	sesOnce.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			sesErr = err
			return
		}
		sesClient = ses.NewFromConfig(cfg)
	})
	return sesClient, sesErr
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	client, err := getSESClient()
	if err != nil {
		return fmt.Errorf("ses client init failed: %w", err)
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendPasswordResetEmail delivers the reset token to the user.
func SendPasswordResetEmail(to string, token string) error {
	subject := "Password Reset"
	body := fmt.Sprintf("Your password reset token is: %s\n\nUse this in the app to set a new password. The token expires in 15 minutes.", token)
	return sendEmail(to, subject, body)
}
