package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"gm-poster/internal/domain"
	"gm-poster/internal/usecase"
)

const (
	messagePosted        = "Tweet posted successfully!"
	messageInvalidPost   = "The generated tweet text is invalid."
	messagePublishFailed = "Failed to post the tweet."
	messageError         = "An error occurred."

	correlationHeader = "X-Correlation-Id"
)

type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type PostUseCase interface {
	Post(ctx context.Context) (usecase.PostOutput, error)
}

type postResponse struct {
	Message string `json:"message"`
	TweetID string `json:"tweetId"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	uc PostUseCase
}

func NewHandler(uc PostUseCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: post use case must not be nil")
	}
	return &Handler{uc: uc}, nil
}

// Handle runs one generate-and-publish cycle. The trigger payload is not read.
// Failures are always reported through the response, never as a Go error.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (Response, error) {
	correlationID := correlationIDFrom(ctx)

	out, err := h.uc.Post(ctx)
	if err != nil {
		status, body := errorToResponse(err)
		logFailure(ctx, correlationID, status, err)
		return jsonResponse(status, correlationID, body), nil
	}

	slog.InfoContext(ctx, "tweet posted",
		"correlation_id", correlationID,
		"tweet_id", out.PostID,
		"length", domain.Draft{Text: out.Text}.Length(),
	)
	return jsonResponse(http.StatusOK, correlationID, postResponse{
		Message: messagePosted,
		TweetID: out.PostID,
	}), nil
}

func errorToResponse(err error) (int, errorResponse) {
	var usecaseErr *usecase.Error
	if !errors.As(err, &usecaseErr) {
		return http.StatusInternalServerError, errorResponse{Message: messageError, Error: err.Error()}
	}
	switch usecaseErr.Code {
	case usecase.ErrorInvalidPost:
		return http.StatusBadRequest, errorResponse{Message: messageInvalidPost}
	case usecase.ErrorPublishFailed:
		return http.StatusInternalServerError, errorResponse{Message: messagePublishFailed}
	default:
		cause := usecaseErr.Err
		if cause == nil {
			cause = usecaseErr
		}
		return http.StatusInternalServerError, errorResponse{Message: messageError, Error: cause.Error()}
	}
}

func logFailure(ctx context.Context, correlationID string, status int, err error) {
	attrs := []any{
		"correlation_id", correlationID,
		"status", status,
		"err", err,
	}
	var usecaseErr *usecase.Error
	if errors.As(err, &usecaseErr) {
		attrs = append(attrs, "code", string(usecaseErr.Code), "reason", usecaseErr.Reason)
	}
	if upstream, ok := usecase.UpstreamStatusCode(err); ok {
		attrs = append(attrs, "upstream_status", upstream)
	}
	if status < http.StatusInternalServerError {
		slog.WarnContext(ctx, "generated tweet rejected", attrs...)
		return
	}
	slog.ErrorContext(ctx, "an error occurred", attrs...)
}

func jsonResponse(status int, correlationID string, body any) Response {
	buf, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		buf = []byte(`{"message":"` + messageError + `"}`)
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			"content-type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(buf),
	}
}

func correlationIDFrom(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return newCorrelationID()
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
