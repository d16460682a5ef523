package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/phone-auth-api/internal/config"
)

// CodeSender delivers a verification code to a phone number via AWS SNS.
// Delivery is best-effort from the caller's perspective: the issuer logs and
// swallows any error returned here.
type CodeSender interface {
	SendCode(ctx context.Context, to, code string) error
}

type sender struct {
	client     *sns.Client
	templateID string
	language   string
	template   string
}

func NewSender(cfg *config.Config) (CodeSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{
		client:     sns.NewFromConfig(awsCfg),
		templateID: cfg.SMSTemplateID,
		language:   cfg.SMSLanguage,
		template:   cfg.SMSTemplate,
	}, nil
}

// SendCode publishes the templated message with the code as its single text
// parameter. Template id and language tag travel as message attributes for
// downstream delivery pipelines.
func (s *sender) SendCode(ctx context.Context, to, code string) error {
	message := fmt.Sprintf(s.template, code)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
		MessageAttributes: map[string]types.MessageAttributeValue{
			"template": {DataType: strPtr("String"), StringValue: &s.templateID},
			"language": {DataType: strPtr("String"), StringValue: &s.language},
		},
	})
	return err
}

func strPtr(s string) *string { return &s }
