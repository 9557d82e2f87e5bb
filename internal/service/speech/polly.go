package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// PollyAPI is the subset of the Polly client used here.
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

var pollyVoices = map[string]types.VoiceId{
	"en": types.VoiceIdJoanna,
	"ar": types.VoiceIdZeina,
	"fr": types.VoiceIdCeline,
	"es": types.VoiceIdLucia,
	"de": types.VoiceIdMarlene,
}

// PollyProvider synthesizes speech with Amazon Polly.
type PollyProvider struct {
	client PollyAPI
}

// NewPollyProvider creates a Polly provider.
func NewPollyProvider(client PollyAPI) *PollyProvider {
	return &PollyProvider{client: client}
}

// Name implements Provider.
func (p *PollyProvider) Name() string {
	return "polly"
}

// VoiceFor returns the Polly voice used for lang, defaulting to Joanna.
func VoiceFor(lang string) types.VoiceId {
	if v, ok := pollyVoices[lang]; ok {
		return v
	}
	return types.VoiceIdJoanna
}

// Synthesize implements Provider.
func (p *PollyProvider) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		TextType:     types.TextTypeText,
		VoiceId:      VoiceFor(lang),
	})
	if err != nil {
		return nil, fmt.Errorf("polly synthesize: %w", err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("reading polly stream: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("polly returned no audio")
	}
	return audio, nil
}
