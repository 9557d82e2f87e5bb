package translate

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
)

// TranslateAPI is the subset of the AWS Translate client used here.
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

// AWSProvider translates with Amazon Translate.
type AWSProvider struct {
	client TranslateAPI
}

// NewAWSProvider creates an Amazon Translate provider.
func NewAWSProvider(client TranslateAPI) *AWSProvider {
	return &AWSProvider{client: client}
}

// Name implements Provider.
func (p *AWSProvider) Name() string {
	return "aws"
}

// Translate implements Provider.
func (p *AWSProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	out, err := p.client.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(target),
	})
	if err != nil {
		return "", fmt.Errorf("aws translate: %w", err)
	}
	return aws.ToString(out.TranslatedText), nil
}
