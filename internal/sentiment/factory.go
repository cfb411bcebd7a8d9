package sentiment

import (
	"fmt"

	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/clients"
)

// New builds the classifier selected by cfg.ClassifierBackend.
func New(cfg config.Config) (Classifier, error) {
	switch cfg.ClassifierBackend {
	case config.BackendNaiveBayes:
		nb, err := LoadNaiveBayes(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		return nb, nil
	case config.BackendVader:
		return NewVader(), nil
	case config.BackendOpenAI:
		return NewOpenAI(clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)), nil
	case config.BackendRemote:
		return NewRemote(clients.NewSentimentServiceClient(cfg.RemoteClassifierURL, cfg.RemoteClassifierTimeout)), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.ClassifierBackend)
	}
}
