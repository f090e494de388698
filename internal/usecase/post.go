package usecase

import (
	"context"
	"errors"
	"strings"

	"gm-poster/internal/domain"
)

// maxCompletionTokens caps the model output; the post limit is enforced
// separately on the normalized text.
const maxCompletionTokens = 240

// TextGenerator produces raw post text from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, model string, messages []domain.ChatMessage, maxTokens int) (string, error)
}

// Publisher submits the final text and returns the created post id. An empty
// id with a nil error means the platform reported no created post.
type Publisher interface {
	Publish(ctx context.Context, text string) (string, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type PostService struct {
	generator TextGenerator
	publisher Publisher
	model     string
}

type PostOutput struct {
	PostID string
	Text   string
}

func NewPostService(g TextGenerator, p Publisher, model string) (*PostService, error) {
	if g == nil {
		return nil, errors.New("usecase: text generator must not be nil")
	}
	if p == nil {
		return nil, errors.New("usecase: publisher must not be nil")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("usecase: model must not be empty")
	}
	return &PostService{
		generator: g,
		publisher: p,
		model:     model,
	}, nil
}

// Post generates one draft, validates it and publishes it. Publishing is
// attempted only after a valid draft exists; nothing is retried.
func (s *PostService) Post(ctx context.Context) (PostOutput, error) {
	raw, err := s.generator.Generate(ctx, s.model, buildPromptMessages(), maxCompletionTokens)
	if err != nil {
		return PostOutput{}, newError(ErrorUpstream, "model_error", err)
	}

	draft := newDraft(raw)
	if err := validateDraft(draft); err != nil {
		var invalid *draftValidationError
		if errors.As(err, &invalid) {
			return PostOutput{}, newError(ErrorInvalidPost, invalid.reason, nil)
		}
		return PostOutput{}, newError(ErrorInvalidPost, "invalid_post", nil)
	}

	id, err := s.publisher.Publish(ctx, draft.Text)
	if err != nil {
		return PostOutput{}, newError(ErrorUpstream, "publish_error", err)
	}
	if strings.TrimSpace(id) == "" {
		return PostOutput{}, newError(ErrorPublishFailed, "missing_post_id", nil)
	}

	return PostOutput{
		PostID: id,
		Text:   draft.Text,
	}, nil
}

// UpstreamStatusCode extracts the HTTP status of a failed upstream call, if
// the error chain carries one.
func UpstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
