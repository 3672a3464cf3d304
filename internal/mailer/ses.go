package mailer

import (
	"context"
	"fmt"

	appconfig "floral-commerce/internal/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type SESSender struct {
	sesClient *sesv2.Client
	from      string
}

func NewSESSender(mailCfg *appconfig.Mail) (*SESSender, error) {
	if mailCfg.AWSAccessKey == "" || mailCfg.AWSSecretKey == "" {
		return nil, fmt.Errorf("accessKey or secretKey is empty")
	}

	cred := credentials.NewStaticCredentialsProvider(mailCfg.AWSAccessKey, mailCfg.AWSSecretKey, "")

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(cred),
		awsconfig.WithRegion(mailCfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return &SESSender{
		sesClient: sesv2.NewFromConfig(cfg),
		from:      mailCfg.FromAddress,
	}, nil
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	body, err := renderTemplate(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	htmlBody := body.String()
	subject := msg.Subject

	emailContent := &types.Message{
		Body: &types.Body{
			Html: &types.Content{
				Data: &htmlBody,
			},
		},
		Subject: &types.Content{
			Data: &subject,
		},
	}

	emailInput := &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: emailContent,
		},
	}

	if _, err := s.sesClient.SendEmail(ctx, emailInput); err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}

	return nil
}
