package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const CHARSET = "UTF-8"

type SESNotifier struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSESNotifier(awsConfig aws.Config, sender string) *SESNotifier {
	return &SESNotifier{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (n *SESNotifier) Send(ctx context.Context, message Message) error {
	_, err := n.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(n.sender),
			Destination: &types.Destination{
				ToAddresses: []string{message.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(CHARSET)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(message.HTML), Charset: aws.String(CHARSET)},
					Text: &types.Content{Data: aws.String(message.Text), Charset: aws.String(CHARSET)},
				},
			},
		},
	)
	return err
}
